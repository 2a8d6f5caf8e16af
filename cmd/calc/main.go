package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calc/internal/shell"
)

const usage = `usage: calc [-dhn] [-c config] [-e expr]... [-f file] [-l level] [-o text|yaml] [expr...]

Evaluates each expression given with -e or as an argument. With -f, evaluates
each line of file, or of standard input if file is -. With neither, starts an
interactive session when standard input is a terminal and reads lines from it
otherwise.

  -c config  read settings from config (default in the user config directory)
  -d         show step-by-step evaluation for every expression
  -e expr    evaluate expr (any number of times)
  -f file    evaluate the lines of file
  -h         show this help
  -l level   log level (debug, info, warn, error)
  -n         disable colors
  -o format  output format, text or yaml
`

func main() {
	os.Exit(run(os.Args))
}

// run runs the calculator and returns the exit code: 0 on success, 1 if any
// expression failed, 2 on bad usage or setup.
func run(args []string) int {
	opts, optind, err := getopt.Getopts(args, "c:de:f:hl:no:")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
	var (
		cfgpath, inname, level, format string
		exprs                          []string
		details, nocolor               bool
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			cfgpath = opt.Value
		case 'd':
			details = true
		case 'e':
			exprs = append(exprs, opt.Value)
		case 'f':
			inname = opt.Value
		case 'h':
			fmt.Print(usage)
			return 0
		case 'l':
			level = opt.Value
		case 'n':
			nocolor = true
		case 'o':
			format = opt.Value
		}
	}
	exprs = append(exprs, args[optind:]...)

	lv := zerolog.WarnLevel
	if level != "" {
		lv, err = zerolog.ParseLevel(level)
		if err != nil {
			fmt.Fprintln(os.Stderr, "calc:", err)
			return 2
		}
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("service", "calc").Logger().
		Level(lv)

	if cfgpath == "" {
		cfgpath, err = shell.DefaultConfigPath()
		if err != nil {
			logger.Warn().Err(err).Msg("no config directory")
		}
	}
	cfg := shell.DefaultConfig()
	if cfgpath != "" {
		cfg, err = shell.LoadConfig(cfgpath, logger)
		if err != nil {
			logger.Error().Err(err).Msg("bad config")
			return 2
		}
	}
	if level == "" {
		logger = logger.Level(cfg.Level())
	}
	if details {
		cfg.Details = true
	}
	if nocolor {
		cfg.Color = false
	}
	if format != "" {
		cfg.Format = format
	}
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("bad settings")
		return 2
	}

	switch {
	case len(exprs) > 0 || inname != "":
		return batch(exprs, inname, cfg, logger)
	case isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()):
		if err := repl(cfg, logger); err != nil {
			logger.Error().Err(err).Msg("session ended")
			return 1
		}
		return 0
	default:
		return batch(nil, "-", cfg, logger)
	}
}

// batch evaluates exprs, then the lines of the file named inname, if any.
func batch(exprs []string, inname string, cfg shell.Config, logger zerolog.Logger) int {
	s, err := shell.New(os.Stdout, cfg, nil, logger)
	if err != nil {
		logger.Error().Err(err).Msg("creating shell")
		return 2
	}
	for _, expr := range exprs {
		s.Eval(expr, false)
	}
	if inname != "" {
		in, err := infile(inname)
		if err != nil {
			logger.Error().Err(err).Msg("opening input")
			return 2
		}
		defer in.Close()
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			if s.Exec(sc.Text()) {
				break
			}
		}
		if err := sc.Err(); err != nil {
			logger.Error().Err(err).Str("file", inname).Msg("reading input")
			return 2
		}
	}
	logger.Debug().Int("failed", s.Failed()).Msg("batch done")
	if s.Failed() > 0 {
		return 1
	}
	return 0
}

func infile(inname string) (io.ReadCloser, error) {
	if inname == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(inname)
}

const banner = `Console Calculator
Supports: +, -, *, /, %, ^, r (root), functions (sin, cos, etc.)
Constants: pi, e
Navigation: ←/→, Home/End, ↑/↓ for history, Tab to complete names
Special commands: 'quit' to exit, 'clear' to reset history, 'help' for more
Add 'details' before or after an expression for step-by-step evaluation
`

// repl runs an interactive session until the user quits or closes input.
func repl(cfg shell.Config, logger zerolog.Logger) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(shell.Complete)

	s, err := shell.New(os.Stdout, cfg, line, logger)
	if err != nil {
		return err
	}
	logger.Info().Str("format", cfg.Format).Bool("details", cfg.Details).Msg("starting session")
	fmt.Print(banner, "\n")
	for {
		in, err := line.Prompt(cfg.Prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Println()
			return nil
		case err != nil:
			return err
		}
		if s.Exec(in) {
			return nil
		}
	}
}
