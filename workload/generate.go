package workload

import (
	"math/rand"

	"github.com/segmentio/ksuid"

	"github.com/msiebuhr/unagi"
)

// Generate emits n synthetic requests on the returned channel, as
// *unagi.Request values, and closes it when done.
//
// Puts store a document generated from its own seed. Queries reuse the seed
// of an earlier put with a random skip, so they draw a piece of a stored
// document and usually hit. The same profile always yields the same
// sequence, except for the put labels which are fresh ksuids.
func Generate(p Profile, n int) chan interface{} {
	c := make(chan interface{}, 100)

	go func() {
		defer close(c)

		r := rand.New(rand.NewSource(p.Seed))
		alphabet := string(p.Alphabet)
		docSize := p.DocSize.Int()
		querySize := p.QuerySize.Int()

		var putSeeds []int64
		for i := 0; i < n; i++ {
			seed := r.Int63()

			if len(putSeeds) == 0 || r.Float64() < p.PutRatio {
				putSeeds = append(putSeeds, seed)
				c <- unagi.PutRandom(ksuid.New().String(), seed, 0, docSize, alphabet)
				continue
			}

			docSeed := putSeeds[r.Intn(len(putSeeds))]
			skip := r.Intn(docSize - querySize + 1)
			if r.Float64() < p.GetcRatio {
				c <- unagi.GetcRandom(docSeed, skip, querySize, alphabet)
			} else {
				c <- unagi.GetRandom(docSeed, skip, querySize, alphabet)
			}
		}
	}()

	return c
}
