package unagi

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedRequest is the cause of every decoding error that is not an
// I/O error from the underlying reader.
var ErrMalformedRequest = errors.New("malformed request")

// Request is one wire message. Label and Data are only used by put, Query
// only by get and getc.
type Request struct {
	Op    Op
	Label string
	Data  string
	Query string
}

func Put(label, data string) *Request {
	return &Request{Op: OP_PUT, Label: label, Data: data}
}

func Get(query string) *Request {
	return &Request{Op: OP_GET, Query: query}
}

func Getc(query string) *Request {
	return &Request{Op: OP_GETC, Query: query}
}

func Dump() *Request  { return &Request{Op: OP_DUMP} }
func Dumpc() *Request { return &Request{Op: OP_DUMPC} }
func Save() *Request  { return &Request{Op: OP_SAVE} }
func Quit() *Request  { return &Request{Op: OP_QUIT} }

// WriteTo serializes the request. Lengths are byte counts, so multi-byte
// UTF-8 text is counted per byte rather than per character. Nothing follows
// the last segment.
func (r Request) WriteTo(w io.Writer) (int64, error) {
	var written int64 = 0
	n, err := fmt.Fprintf(w, "%s\n", r.Op)
	written += int64(n)
	if err != nil {
		return written, err
	}

	var segments []string
	switch r.Op {
	case OP_PUT:
		segments = []string{r.Label, r.Data}
	case OP_GET, OP_GETC:
		segments = []string{r.Query}
	}

	for i, s := range segments {
		if i > 0 {
			n, err = io.WriteString(w, "\n")
			written += int64(n)
			if err != nil {
				return written, err
			}
		}
		n, err = fmt.Fprintf(w, "%d\n", len(s))
		written += int64(n)
		if err != nil {
			return written, err
		}
		n, err = io.WriteString(w, s)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	return written, nil
}

// Bytes returns the wire form of the request.
func (r Request) Bytes() []byte {
	var buf bytes.Buffer
	r.WriteTo(&buf)
	return buf.Bytes()
}

func (r Request) String() string {
	switch r.Op {
	case OP_PUT:
		return fmt.Sprintf("put label=%q data=%dB", r.Label, len(r.Data))
	case OP_GET, OP_GETC:
		return fmt.Sprintf("%s query=%q", r.Op, r.Query)
	}
	return string(r.Op)
}

// MakePutMsg, MakeGetMsg and friends build the raw bytes for a single
// command.
func MakePutMsg(label, data string) []byte { return Put(label, data).Bytes() }
func MakeGetMsg(query string) []byte       { return Get(query).Bytes() }
func MakeGetcMsg(query string) []byte      { return Getc(query).Bytes() }

// ReadRequest decodes a single message from r. It returns io.EOF if r ends
// cleanly before a new keyword starts.
func ReadRequest(r *bufio.Reader) (*Request, error) {
	keyword, err := r.ReadString('\n')
	if err == io.EOF && keyword == "" {
		return nil, io.EOF
	}
	if err == io.EOF {
		return nil, errors.Wrapf(ErrMalformedRequest, "unterminated keyword %q", keyword)
	}
	if err != nil {
		return nil, err
	}

	op, ok := ParseOp(strings.TrimSuffix(keyword, "\n"))
	if !ok {
		return nil, errors.Wrapf(ErrMalformedRequest, "unknown keyword %q", strings.TrimSpace(keyword))
	}

	req := &Request{Op: op}
	switch op {
	case OP_PUT:
		if req.Label, err = readSegment(r); err != nil {
			return nil, errors.WithMessage(err, "label")
		}
		if err = expectNewline(r); err != nil {
			return nil, errors.WithMessage(err, "label")
		}
		if req.Data, err = readSegment(r); err != nil {
			return nil, errors.WithMessage(err, "data")
		}
	case OP_GET, OP_GETC:
		if req.Query, err = readSegment(r); err != nil {
			return nil, errors.WithMessage(err, "query")
		}
	}
	return req, nil
}

func readSegment(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == io.EOF {
		return "", errors.Wrap(ErrMalformedRequest, "missing length")
	}
	if err != nil {
		return "", err
	}

	size, err := strconv.ParseUint(strings.TrimSpace(line), 10, 63)
	if err != nil {
		return "", errors.Wrapf(ErrMalformedRequest, "cannot parse length %q", strings.TrimSpace(line))
	}

	// Grow as data arrives instead of trusting the declared size up-front
	var data strings.Builder
	n, err := io.CopyN(&data, r, int64(size))
	if err == io.EOF {
		return "", errors.Wrapf(ErrMalformedRequest, "expected %d bytes, got %d", size, n)
	}
	if err != nil {
		return "", err
	}
	return data.String(), nil
}

func expectNewline(r *bufio.Reader) error {
	b, err := r.ReadByte()
	if err == io.EOF {
		return errors.Wrap(ErrMalformedRequest, "missing separator")
	}
	if err != nil {
		return err
	}
	if b != '\n' {
		return errors.Wrapf(ErrMalformedRequest, "expected separator, got %q", b)
	}
	return nil
}
