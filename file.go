package unagi

import (
	"os"

	"github.com/pkg/errors"
)

// WriteMessageFile stores the wire form of req so it can be replayed later
// with Client.SendFile.
func WriteMessageFile(filename string, req *Request) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating message file")
	}

	if _, err := req.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", filename)
	}
	return errors.Wrapf(f.Close(), "closing %s", filename)
}

// Random requests, as used by the *_random commands.

func PutRandom(label string, seed int64, skip, n int, alphabet string) *Request {
	return Put(label, RandomData(seed, skip, n, alphabet))
}

func GetRandom(seed int64, skip, n int, alphabet string) *Request {
	return Get(RandomData(seed, skip, n, alphabet))
}

func GetcRandom(seed int64, skip, n int, alphabet string) *Request {
	return Getc(RandomData(seed, skip, n, alphabet))
}
