package shell

import "strings"

// CmdKind identifies what a line of input asks the shell to do.
type CmdKind int8

const (
	// CmdEmpty is a blank line.
	CmdEmpty CmdKind = iota
	// CmdQuit ends the session.
	CmdQuit
	// CmdClear clears the line history.
	CmdClear
	// CmdHelp prints the list of operators, functions, and commands.
	CmdHelp
	// CmdEval evaluates an expression.
	CmdEval
)

var cmdKindNames = [...]string{
	CmdEmpty: "empty",
	CmdQuit:  "quit",
	CmdClear: "clear",
	CmdHelp:  "help",
	CmdEval:  "eval",
}

func (k CmdKind) String() string {
	if k < 0 || int(k) >= len(cmdKindNames) {
		return "CmdKind(?)"
	}
	return cmdKindNames[k]
}

// Command is a classified line of input.
type Command struct {
	Kind CmdKind
	// Expr is the expression to evaluate, with any details marker removed.
	// It may be empty for a CmdEval if the line was only the marker.
	Expr string
	// Details is whether the line asked for a step-by-step evaluation.
	Details bool
}

// detailsWord marks a line for step-by-step evaluation when it begins or
// ends the line as a separate word.
const detailsWord = "details"

// Classify decides what a line of input asks for. Command words and the
// details marker are matched without regard to case.
func Classify(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: CmdEmpty}
	}
	switch strings.ToLower(line) {
	case "quit", "exit", "q":
		return Command{Kind: CmdQuit}
	case "clear", "reset":
		return Command{Kind: CmdClear}
	case "help", "?":
		return Command{Kind: CmdHelp}
	case detailsWord:
		return Command{Kind: CmdEval, Details: true}
	}
	// Lower casing can change byte lengths outside ASCII, so the marker is
	// compared on the original text.
	n := len(detailsWord)
	if len(line) > n && strings.EqualFold(line[:n], detailsWord) && isblank(line[n]) {
		return Command{Kind: CmdEval, Expr: strings.TrimSpace(line[n:]), Details: true}
	}
	if len(line) > n && strings.EqualFold(line[len(line)-n:], detailsWord) && isblank(line[len(line)-n-1]) {
		return Command{Kind: CmdEval, Expr: strings.TrimSpace(line[:len(line)-n]), Details: true}
	}
	return Command{Kind: CmdEval, Expr: line}
}

func isblank(c byte) bool {
	return c == ' ' || c == '\t'
}
