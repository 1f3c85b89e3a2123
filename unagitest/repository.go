package unagitest

import (
	"strings"
	"sync"
)

// Bytes of context on each side of a match in get replies
const snippetContext = 12

type Document struct {
	Label string
	Data  string
}

type Occurrence struct {
	Document Document
	Offset   int
	Snippet  string
}

// Repository is an in-memory document store with substring search. It is
// safe for concurrent use.
type Repository struct {
	lock sync.RWMutex
	docs []Document

	// Number of save requests seen
	saves int
}

func NewRepository() *Repository {
	return &Repository{}
}

// Put stores a document and returns its index.
func (r *Repository) Put(label, data string) int {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.docs = append(r.docs, Document{Label: label, Data: data})
	return len(r.docs) - 1
}

// Count returns the number of (possibly overlapping) occurrences of query
// in all documents.
func (r *Repository) Count(query string) int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	c := 0
	for _, doc := range r.docs {
		c += len(offsets(doc.Data, query))
	}
	return c
}

// Query returns every occurrence of query with a snippet around it.
func (r *Repository) Query(query string) []Occurrence {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var occs []Occurrence
	for _, doc := range r.docs {
		for _, o := range offsets(doc.Data, query) {
			start := o - snippetContext
			if start < 0 {
				start = 0
			}
			end := o + len(query) + snippetContext
			if end > len(doc.Data) {
				end = len(doc.Data)
			}
			occs = append(occs, Occurrence{Document: doc, Offset: o, Snippet: doc.Data[start:end]})
		}
	}
	return occs
}

// Dump returns a copy of all documents in insertion order.
func (r *Repository) Dump() []Document {
	r.lock.RLock()
	defer r.lock.RUnlock()

	docs := make([]Document, len(r.docs))
	copy(docs, r.docs)
	return docs
}

func (r *Repository) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.docs)
}

// Save only counts calls; there is nothing to persist.
func (r *Repository) Save() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.saves++
	return len(r.docs)
}

func (r *Repository) Saves() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.saves
}

// Byte offsets of every match, overlapping ones included. An empty query
// matches nothing.
func offsets(s, sub string) []int {
	if sub == "" {
		return nil
	}
	var res []int
	for i := 0; i+len(sub) <= len(s); {
		j := strings.Index(s[i:], sub)
		if j < 0 {
			break
		}
		res = append(res, i+j)
		i += j + 1
	}
	return res
}
