package unagi

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCommand(t *testing.T) {
	var tests = []struct {
		name string
		args []string
		cmd  Command
	}{
		{"put", []string{"label", "some data"}, RequestCommand{Put("label", "some data")}},
		{"get", []string{"query"}, RequestCommand{Get("query")}},
		{"getc", []string{"query", "ignored"}, RequestCommand{Getc("query")}},
		{"dump", nil, RequestCommand{Dump()}},
		{"dumpc", nil, RequestCommand{Dumpc()}},
		{"save", nil, RequestCommand{Save()}},
		{"quit", nil, RequestCommand{Quit()}},
		{"put_random", []string{"doc", "1234", "500"},
			RandomCommand{Op: OP_PUT, Label: "doc", Seed: 1234, N: 500, Alphabet: Letters}},
		{"get_random", []string{"1234", "100", "5"},
			RandomCommand{Op: OP_GET, Seed: 1234, Skip: 100, N: 5, Alphabet: Letters}},
		{"getc_random", []string{"-7", "0", "5"},
			RandomCommand{Op: OP_GETC, Seed: -7, N: 5, Alphabet: Letters}},
		{"make_put_random", []string{"doc", "1", "2", "p.dat"},
			MakeRandomCommand{RandomCommand{Op: OP_PUT, Label: "doc", Seed: 1, N: 2, Alphabet: Letters}, "p.dat"}},
		{"make_get_random", []string{"1", "2", "3", "g.dat"},
			MakeRandomCommand{RandomCommand{Op: OP_GET, Seed: 1, Skip: 2, N: 3, Alphabet: Letters}, "g.dat"}},
		{"make_getc_random", []string{"1", "2", "3", "c.dat"},
			MakeRandomCommand{RandomCommand{Op: OP_GETC, Seed: 1, Skip: 2, N: 3, Alphabet: Letters}, "c.dat"}},
		{"send_file", []string{"p.dat"}, SendFileCommand{"p.dat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.name, tt.args, Letters)
			if err != nil {
				t.Fatalf("Unexpected error: %s", err)
			}
			if cmd.Name() != tt.name {
				t.Errorf("Expected Name() %q, got %q", tt.name, cmd.Name())
			}

			// Requests are pointers, so compare their wire form
			if rc, ok := tt.cmd.(RequestCommand); ok {
				got, ok := cmd.(RequestCommand)
				if !ok || !bytes.Equal(got.Request.Bytes(), rc.Request.Bytes()) {
					t.Errorf("Expected %#v, got %#v", tt.cmd, cmd)
				}
				return
			}
			if cmd != tt.cmd {
				t.Errorf("Expected %#v, got %#v", tt.cmd, cmd)
			}
		})
	}
}

func TestParseCommandUnknown(t *testing.T) {
	_, err := ParseCommand("prepare_random", nil, Letters)

	var unknown *UnknownCommandError
	if !errors.As(err, &unknown) {
		t.Fatalf("Expected *UnknownCommandError, got %T: %v", err, err)
	}
	if unknown.Name != "prepare_random" {
		t.Errorf("Expected name prepare_random, got %q", unknown.Name)
	}
}

func TestParseCommandBadArguments(t *testing.T) {
	var tests = []struct {
		name string
		args []string
	}{
		{"put", []string{"only-label"}},
		{"get", nil},
		{"put_random", []string{"doc", "seed", "10"}},
		{"get_random", []string{"1", "-1", "10"}},
		{"getc_random", []string{"1", "1", "ten"}},
		{"make_put_random", []string{"doc", "1", "10"}},
		{"send_file", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCommand(tt.name, tt.args, Letters)
			var argErr *ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("Expected *ArgumentError, got %T: %v", err, err)
			}
			if argErr.Command != tt.name {
				t.Errorf("Expected error for %s, got %s", tt.name, argErr.Command)
			}
		})
	}
}

func TestMakeRandomCommandRun(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "g.dat")
	cmd, err := ParseCommand("make_get_random", []string{"1234", "100", "20", filename}, Letters)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	// No client needed for staging a file
	if err := cmd.Run(context.Background(), nil); err != nil {
		t.Fatalf("Unexpected error running %s: %s", cmd.Name(), err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Unexpected error reading %s: %s", filename, err)
	}
	if !bytes.Equal(data, GetRandom(1234, 100, 20, Letters).Bytes()) {
		t.Errorf("Unexpected file content %q", data)
	}
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf, "unagi-client")
	out := buf.String()

	for _, ca := range commandArgs {
		if !strings.Contains(out, "unagi-client PORT "+ca.name) {
			t.Errorf("Expected usage to mention %s, got\n%s", ca.name, out)
		}
	}
	if !strings.Contains(out, "(14) unagi-client PORT send_file FILENAME\n") {
		t.Errorf("Unexpected usage layout:\n%s", out)
	}
}
