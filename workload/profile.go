package workload

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/msiebuhr/unagi"
	"github.com/msiebuhr/unagi/customflags"
)

// Profile describes the mix of requests a load test sends.
type Profile struct {
	Seed     int64                `yaml:"seed"`
	Alphabet customflags.Alphabet `yaml:"alphabet"`

	// Fraction of requests that are puts; the rest are queries
	PutRatio float64 `yaml:"put_ratio"`
	// Fraction of queries sent as getc instead of get
	GetcRatio float64 `yaml:"getc_ratio"`

	DocSize   customflags.Size `yaml:"doc_size"`
	QuerySize customflags.Size `yaml:"query_size"`

	// Per-request timeout; zero disables it
	Timeout Duration `yaml:"timeout"`
}

type Duration struct{ time.Duration }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = dd
	return nil
}

func DefaultProfile() Profile {
	return Profile{
		Seed:      1234,
		Alphabet:  customflags.Alphabet(unagi.Letters),
		PutRatio:  1.0 / 3,
		GetcRatio: 0.5,
		DocSize:   customflags.Size(1024),
		QuerySize: customflags.Size(8),
		Timeout:   Duration{10 * time.Second},
	}
}

// LoadProfile reads a YAML profile. Fields missing from the file keep their
// DefaultProfile values.
func LoadProfile(path string) (*Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := DefaultProfile()
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrapf(err, "profile %s", path)
	}
	return &p, nil
}

func (p Profile) Validate() error {
	if p.PutRatio < 0 || p.PutRatio > 1 {
		return errors.Errorf("put_ratio must be within [0, 1], got %v", p.PutRatio)
	}
	if p.GetcRatio < 0 || p.GetcRatio > 1 {
		return errors.Errorf("getc_ratio must be within [0, 1], got %v", p.GetcRatio)
	}
	if p.DocSize <= 0 || p.QuerySize <= 0 {
		return errors.Errorf("doc_size and query_size must be positive, got %s and %s", p.DocSize, p.QuerySize)
	}
	if p.QuerySize > p.DocSize {
		return errors.Errorf("query_size %s is larger than doc_size %s", p.QuerySize, p.DocSize)
	}
	if len(p.Alphabet) == 0 {
		return errors.New("alphabet is empty")
	}
	return nil
}
