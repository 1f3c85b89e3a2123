package unagi

import (
	"context"
	"fmt"
	"strconv"
)

// Command is one parsed command line. Sending commands use the client; the
// make_* commands only write a file.
type Command interface {
	Name() string
	Run(ctx context.Context, c *Client) error
}

// UnknownCommandError is returned by ParseCommand for names it doesn't know.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// ArgumentError reports missing or unparsable command arguments.
type ArgumentError struct {
	Command string
	Usage   string
	Err     error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Command, e.Usage, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// Plain requests: put, get, getc, dump, dumpc, save and quit
type RequestCommand struct {
	Request *Request
}

func (rc RequestCommand) Name() string { return rc.Request.Op.String() }
func (rc RequestCommand) Run(ctx context.Context, c *Client) error {
	return c.Do(ctx, rc.Request)
}

// put_random, get_random and getc_random
type RandomCommand struct {
	Op       Op
	Label    string
	Seed     int64
	Skip     int
	N        int
	Alphabet string
}

func (rc RandomCommand) Name() string { return rc.Op.String() + "_random" }
func (rc RandomCommand) Run(ctx context.Context, c *Client) error {
	return c.Do(ctx, rc.Request())
}

func (rc RandomCommand) Request() *Request {
	switch rc.Op {
	case OP_PUT:
		return PutRandom(rc.Label, rc.Seed, rc.Skip, rc.N, rc.Alphabet)
	case OP_GETC:
		return GetcRandom(rc.Seed, rc.Skip, rc.N, rc.Alphabet)
	}
	return GetRandom(rc.Seed, rc.Skip, rc.N, rc.Alphabet)
}

// make_put_random, make_get_random and make_getc_random
type MakeRandomCommand struct {
	RandomCommand
	Filename string
}

func (mc MakeRandomCommand) Name() string { return "make_" + mc.RandomCommand.Name() }
func (mc MakeRandomCommand) Run(ctx context.Context, c *Client) error {
	return WriteMessageFile(mc.Filename, mc.Request())
}

type SendFileCommand struct {
	Filename string
}

func (sc SendFileCommand) Name() string { return "send_file" }
func (sc SendFileCommand) Run(ctx context.Context, c *Client) error {
	return c.SendFile(ctx, sc.Filename)
}

// Argument synopsis per command, shared with Usage
var commandArgs = []struct {
	name string
	args string
}{
	{"put", "LABEL DATA"},
	{"get", "QUERY"},
	{"getc", "QUERY"},
	{"dump", ""},
	{"dumpc", ""},
	{"save", ""},
	{"quit", ""},
	{"put_random", "LABEL RANDOM_SEED NUM_CHARS"},
	{"get_random", "RANDOM_SEED SKIP_CHARS NUM_CHARS"},
	{"getc_random", "RANDOM_SEED SKIP_CHARS NUM_CHARS"},
	{"make_put_random", "LABEL RANDOM_SEED NUM_CHARS FILENAME"},
	{"make_get_random", "RANDOM_SEED SKIP_CHARS NUM_CHARS FILENAME"},
	{"make_getc_random", "RANDOM_SEED SKIP_CHARS NUM_CHARS FILENAME"},
	{"send_file", "FILENAME"},
}

// ParseCommand turns a command name and its arguments into a Command.
// Generated data is drawn from alphabet. Arguments beyond the ones a command
// needs are ignored.
func ParseCommand(name string, args []string, alphabet string) (Command, error) {
	p := argParser{args: args}
	for _, ca := range commandArgs {
		if ca.name == name {
			p.command = ca.name
			p.usage = ca.args
			break
		}
	}
	if p.command == "" {
		return nil, &UnknownCommandError{Name: name}
	}

	var cmd Command
	switch name {
	case "put":
		cmd = RequestCommand{Put(p.str(0), p.str(1))}
	case "get":
		cmd = RequestCommand{Get(p.str(0))}
	case "getc":
		cmd = RequestCommand{Getc(p.str(0))}
	case "dump":
		cmd = RequestCommand{Dump()}
	case "dumpc":
		cmd = RequestCommand{Dumpc()}
	case "save":
		cmd = RequestCommand{Save()}
	case "quit":
		cmd = RequestCommand{Quit()}
	case "put_random":
		cmd = RandomCommand{Op: OP_PUT, Label: p.str(0), Seed: p.integer(1), N: p.count(2), Alphabet: alphabet}
	case "get_random":
		cmd = RandomCommand{Op: OP_GET, Seed: p.integer(0), Skip: p.count(1), N: p.count(2), Alphabet: alphabet}
	case "getc_random":
		cmd = RandomCommand{Op: OP_GETC, Seed: p.integer(0), Skip: p.count(1), N: p.count(2), Alphabet: alphabet}
	case "make_put_random":
		cmd = MakeRandomCommand{
			RandomCommand{Op: OP_PUT, Label: p.str(0), Seed: p.integer(1), N: p.count(2), Alphabet: alphabet},
			p.str(3),
		}
	case "make_get_random":
		cmd = MakeRandomCommand{
			RandomCommand{Op: OP_GET, Seed: p.integer(0), Skip: p.count(1), N: p.count(2), Alphabet: alphabet},
			p.str(3),
		}
	case "make_getc_random":
		cmd = MakeRandomCommand{
			RandomCommand{Op: OP_GETC, Seed: p.integer(0), Skip: p.count(1), N: p.count(2), Alphabet: alphabet},
			p.str(3),
		}
	case "send_file":
		cmd = SendFileCommand{p.str(0)}
	}

	if p.err != nil {
		return nil, p.err
	}
	return cmd, nil
}

// Collects the first argument error, so ParseCommand can read every field
// and check once.
type argParser struct {
	command string
	usage   string
	args    []string
	err     error
}

func (p *argParser) fail(err error) {
	if p.err == nil {
		p.err = &ArgumentError{Command: p.command, Usage: p.usage, Err: err}
	}
}

func (p *argParser) str(i int) string {
	if i >= len(p.args) {
		p.fail(fmt.Errorf("missing argument %d", i+1))
		return ""
	}
	return p.args[i]
}

func (p *argParser) integer(i int) int64 {
	s := p.str(i)
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		p.fail(err)
	}
	return v
}

func (p *argParser) count(i int) int {
	v := p.integer(i)
	if p.err != nil {
		return 0
	}
	if v < 0 || int64(int(v)) != v {
		p.fail(fmt.Errorf("argument %d must be a non-negative count, got %d", i+1, v))
		return 0
	}
	return int(v)
}
