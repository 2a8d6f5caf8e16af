// Package shell implements the command layer of the calculator: classifying
// input lines, evaluating expressions, and rendering results.
package shell

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calc"
)

// History is the in-memory line history of an interactive session.
// *liner.State implements it.
type History interface {
	AppendHistory(item string)
	ClearHistory()
}

type nohistory struct{}

func (nohistory) AppendHistory(string) {}
func (nohistory) ClearHistory()        {}

// Shell runs calculator commands and writes their results.
type Shell struct {
	out     io.Writer
	render  *Renderer
	history History
	log     zerolog.Logger
	details bool
	failed  int
}

// New creates a shell writing to out. h may be nil if there is no line
// history to keep.
func New(out io.Writer, cfg Config, h History, log zerolog.Logger) (*Shell, error) {
	r, err := NewRenderer(out, cfg.Format, cfg.Color)
	if err != nil {
		return nil, err
	}
	if h == nil {
		h = nohistory{}
	}
	s := Shell{
		out:     out,
		render:  r,
		history: h,
		log:     log,
		details: cfg.Details,
	}
	return &s, nil
}

// Exec runs one line of input. The result is true if the line asks to end
// the session.
func (s *Shell) Exec(line string) (quit bool) {
	cmd := Classify(line)
	s.log.Debug().Stringer("cmd", cmd.Kind).Str("line", line).Msg("exec")
	switch cmd.Kind {
	case CmdEmpty:
	case CmdQuit:
		s.message("Goodbye!")
		return true
	case CmdClear:
		s.history.ClearHistory()
		s.message("History cleared")
	case CmdHelp:
		if err := Help(s.out); err != nil {
			s.log.Error().Err(err).Msg("writing help")
		}
	case CmdEval:
		if cmd.Expr == "" {
			s.message("Please enter a valid expression after 'details'")
			return false
		}
		s.history.AppendHistory(strings.TrimSpace(line))
		s.Eval(cmd.Expr, cmd.Details)
	}
	return false
}

// Eval evaluates one expression and renders the result. Evaluation is
// detailed if details is true or the shell is configured to always give
// details. The error, if any, is the evaluation error, which has already
// been rendered.
func (s *Shell) Eval(expr string, details bool) error {
	details = details || s.details
	v, steps, err := calc.EvalString(expr, details)
	if err != nil {
		s.failed++
		s.log.Debug().Str("expr", expr).Str("kind", calc.KindOf(err).Error()).Err(err).Msg("failed")
		if werr := s.render.Error(expr, err); werr != nil {
			s.log.Error().Err(werr).Msg("writing result")
		}
		return err
	}
	s.log.Debug().Str("expr", expr).Float64("result", v).Int("steps", len(steps)).Msg("evaluated")
	if werr := s.render.Result(expr, v, steps); werr != nil {
		s.log.Error().Err(werr).Msg("writing result")
	}
	return nil
}

// Failed returns the number of expressions that failed to evaluate.
func (s *Shell) Failed() int {
	return s.failed
}

func (s *Shell) message(msg string) {
	if err := s.render.Message(msg); err != nil {
		s.log.Error().Err(err).Msg("writing message")
	}
}

// Complete gives the completions of the name at the end of line. Functions
// complete with their open parenthesis. Each completion is the whole line.
func Complete(line string) []string {
	start := len(line)
	for start > 0 {
		r, n := utf8.DecodeLastRuneInString(line[:start])
		if !unicode.IsLetter(r) {
			break
		}
		start -= n
	}
	word := strings.ToLower(line[start:])
	if word == "" {
		return nil
	}
	var r []string
	for _, name := range calc.Functions() {
		if strings.HasPrefix(name, word) {
			r = append(r, line[:start]+CallableName(name)+"(")
		}
	}
	for _, name := range calc.Constants() {
		if strings.HasPrefix(name, word) {
			r = append(r, line[:start]+name)
		}
	}
	return r
}
