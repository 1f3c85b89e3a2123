package unagi

import "strings"

// Op is the command keyword that starts every wire message
type Op string

const (
	OP_PUT   Op = "put"
	OP_GET   Op = "get"
	OP_GETC  Op = "getc"
	OP_DUMP  Op = "dump"
	OP_DUMPC Op = "dumpc"
	OP_SAVE  Op = "save"
	OP_QUIT  Op = "quit"
)

var ops = []Op{OP_PUT, OP_GET, OP_GETC, OP_DUMP, OP_DUMPC, OP_SAVE, OP_QUIT}

func (o Op) String() string {
	return string(o)
}

// ParseOp looks up a keyword the way the server does, ignoring case.
func ParseOp(s string) (Op, bool) {
	for _, op := range ops {
		if strings.EqualFold(s, string(op)) {
			return op, true
		}
	}
	return "", false
}

// Letters is the alphabet the command line uses for generated data: upper and
// lower case ASCII letters plus 18 spaces, so roughly one in four characters
// ends a word.
const Letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" + "                  "

// Whitespace is the set of characters treated as word separators by
// RandomData.
const Whitespace = " \t\n\r\v\f"
