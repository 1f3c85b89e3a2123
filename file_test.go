package unagi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteMessageFile(t *testing.T) {
	dir := t.TempDir()

	var tests = []struct {
		name string
		req  *Request
	}{
		{"put.dat", PutRandom("doc-1", 1234, 0, 500, Letters)},
		{"get.dat", GetRandom(1234, 100, 10, Letters)},
		{"getc.dat", GetcRandom(1234, 100, 10, Letters)},
		{"dump.dat", Dump()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := filepath.Join(dir, tt.name)
			if err := WriteMessageFile(filename, tt.req); err != nil {
				t.Fatalf("Unexpected error writing %s: %s", filename, err)
			}

			data, err := os.ReadFile(filename)
			if err != nil {
				t.Fatalf("Unexpected error reading back %s: %s", filename, err)
			}
			if !bytes.Equal(data, tt.req.Bytes()) {
				t.Errorf("Expected file to hold %q, got %q", tt.req.Bytes(), data)
			}
		})
	}
}

func TestWriteMessageFileBadPath(t *testing.T) {
	err := WriteMessageFile(filepath.Join(t.TempDir(), "missing", "p.dat"), Dump())
	if err == nil {
		t.Errorf("Expected error writing into a missing directory")
	}
}

func TestRandomRequestsMatchGenerator(t *testing.T) {
	put := PutRandom("label", 1, 0, 100, Letters)
	if put.Label != "label" || put.Data != RandomData(1, 0, 100, Letters) {
		t.Errorf("PutRandom did not use the generator output: %s", put)
	}

	get := GetRandom(1, 50, 10, Letters)
	getc := GetcRandom(1, 50, 10, Letters)
	if get.Query != getc.Query || get.Query != RandomData(1, 50, 10, Letters) {
		t.Errorf("Expected get/getc random queries to match, got %q and %q", get.Query, getc.Query)
	}
}
