package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/zephyrtronium/calc"
)

// CallableName gives the spelling of a function or constant name that can be
// typed. A lower case r always reads as the root operator, so names beginning
// with it are capitalized.
func CallableName(name string) string {
	if strings.HasPrefix(name, "r") {
		return "R" + name[1:]
	}
	return name
}

// Help writes a summary of the expression language and the shell commands.
func Help(w io.Writer) error {
	fns := calc.Functions()
	for i, name := range fns {
		fns[i] = CallableName(name)
	}
	consts := calc.Constants()
	var b strings.Builder
	b.WriteString("Operators: + - * / % ^ and r (root), e.g. 8 r 3\n")
	b.WriteString("  ^ is right-associative and binds tighter than a leading sign: -2^2 = 4\n")
	b.WriteString("  % is the remainder of the operands truncated to integers\n")
	b.WriteString("Functions (angles in degrees):\n")
	wrap(&b, fns, 72)
	fmt.Fprintf(&b, "Constants: %s\n", strings.Join(consts, ", "))
	b.WriteString("Commands:\n")
	b.WriteString("  details <expr>, <expr> details   evaluate step by step\n")
	b.WriteString("  clear, reset                     clear the line history\n")
	b.WriteString("  help                             show this message\n")
	b.WriteString("  quit, exit, q                    leave\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// wrap writes words separated by commas in indented lines of at most width
// bytes.
func wrap(b *strings.Builder, words []string, width int) {
	const indent = "  "
	n := 0
	for i, word := range words {
		if i < len(words)-1 {
			word += ","
		}
		switch {
		case n == 0:
			b.WriteString(indent)
			n = len(indent)
		case n+1+len(word) > width:
			b.WriteString("\n" + indent)
			n = len(indent)
		default:
			b.WriteByte(' ')
			n++
		}
		b.WriteString(word)
		n += len(word)
	}
	if n > 0 {
		b.WriteByte('\n')
	}
}
