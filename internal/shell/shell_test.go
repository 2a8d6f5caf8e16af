package shell

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

type fakeHistory struct {
	items   []string
	cleared int
}

func (h *fakeHistory) AppendHistory(item string) {
	h.items = append(h.items, item)
}

func (h *fakeHistory) ClearHistory() {
	h.items = nil
	h.cleared++
}

func plainConfig() Config {
	cfg := DefaultConfig()
	cfg.Color = false
	return cfg
}

func newShell(t *testing.T, cfg Config) (*Shell, *bytes.Buffer, *fakeHistory) {
	t.Helper()
	var out bytes.Buffer
	h := new(fakeHistory)
	s, err := New(&out, cfg, h, zerolog.Nop())
	require.NoError(t, err)
	return s, &out, h
}

func TestClassify(t *testing.T) {
	cases := []struct {
		line string
		want Command
	}{
		{"", Command{Kind: CmdEmpty}},
		{" \t ", Command{Kind: CmdEmpty}},
		{"quit", Command{Kind: CmdQuit}},
		{"EXIT", Command{Kind: CmdQuit}},
		{" q ", Command{Kind: CmdQuit}},
		{"clear", Command{Kind: CmdClear}},
		{"Reset", Command{Kind: CmdClear}},
		{"help", Command{Kind: CmdHelp}},
		{"?", Command{Kind: CmdHelp}},
		{"2 + 3", Command{Kind: CmdEval, Expr: "2 + 3"}},
		{"  2 + 3  ", Command{Kind: CmdEval, Expr: "2 + 3"}},
		{"details 2 + 3", Command{Kind: CmdEval, Expr: "2 + 3", Details: true}},
		{"DETAILS   sqrt(16)", Command{Kind: CmdEval, Expr: "sqrt(16)", Details: true}},
		{"2 + 3 details", Command{Kind: CmdEval, Expr: "2 + 3", Details: true}},
		{"2 + 3\tDetails", Command{Kind: CmdEval, Expr: "2 + 3", Details: true}},
		{"details", Command{Kind: CmdEval, Details: true}},
		{"detailsx", Command{Kind: CmdEval, Expr: "detailsx"}},
		{"2details", Command{Kind: CmdEval, Expr: "2details"}},
		{"quit now", Command{Kind: CmdEval, Expr: "quit now"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.line), "line %q", c.line)
	}
}

func TestExecText(t *testing.T) {
	cases := []struct {
		name string
		line string
		want string
	}{
		{"plain", "2+3*4", "  2 + 3 * 4 = 14\n"},
		{"fraction", "10 / 4", "  10 / 4 = 2.5\n"},
		{"no-steps", "details 7", "  7 = 7\n"},
		{
			"details",
			"details 2 + 3 * 4",
			"  2 + 3 * 4 = 14\n\n  Step-by-step evaluation:\n  Step 1: 3 * 4 = 12\n  Step 2: 2 + 12 = 14\n\n",
		},
		{
			"details-suffix",
			"-5 + sqrt(16) details",
			"  -5 + sqrt(16) = -1\n\n  Step-by-step evaluation:\n  Step 1: -5 = -5\n  Step 2: sqrt(16) = 4\n  Step 3: -5 + 4 = -1\n\n",
		},
		{"error", "5 / 0", "  5 / 0 = Error: 3: division by zero in 5 / 0\n"},
		{"lex-error", "2 $ 3", "  2 $ 3 = Error: 3: unknown character \"$\"\n"},
		{"details-empty", "details", "Please enter a valid expression after 'details'\n"},
		{"quit", "quit", "Goodbye!\n"},
		{"clear", "clear", "History cleared\n"},
		{"empty", "   ", ""},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			s, out, _ := newShell(t, plainConfig())
			s.Exec(c.line)
			assert.Equal(t, c.want, out.String())
		})
	}
}

func TestExecHistory(t *testing.T) {
	s, _, h := newShell(t, plainConfig())
	assert.False(t, s.Exec(" 1 + 1 "))
	assert.False(t, s.Exec("details 2 * 2"))
	assert.False(t, s.Exec("1 / 0"))
	assert.False(t, s.Exec(""))
	assert.False(t, s.Exec("help"))
	assert.False(t, s.Exec("details"))
	assert.Equal(t, []string{"1 + 1", "details 2 * 2", "1 / 0"}, h.items)
	assert.Equal(t, 1, s.Failed())

	assert.False(t, s.Exec("reset"))
	assert.Empty(t, h.items)
	assert.Equal(t, 1, h.cleared)

	assert.True(t, s.Exec("Q"))
	assert.Empty(t, h.items, "quit must not enter history")
}

func TestAlwaysDetailed(t *testing.T) {
	cfg := plainConfig()
	cfg.Details = true
	s, out, _ := newShell(t, cfg)
	require.NoError(t, s.Eval("2 ^ 3", false))
	assert.Equal(t, "  2 ^ 3 = 8\n\n  Step-by-step evaluation:\n  Step 1: 2 ^ 3 = 8\n\n", out.String())
}

func TestEvalError(t *testing.T) {
	s, _, _ := newShell(t, plainConfig())
	err := s.Eval("sqrt(-4)", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, calc.OutOfDomain))
	assert.Equal(t, 1, s.Failed())
}

func TestNilHistory(t *testing.T) {
	s, err := New(io.Discard, plainConfig(), nil, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, s.Exec("clear"))
	assert.False(t, s.Exec("1 + 1"))
}

func TestExecYAML(t *testing.T) {
	cfg := plainConfig()
	cfg.Format = FormatYAML
	s, out, _ := newShell(t, cfg)
	s.Exec("details 2+3*4")
	s.Exec("-4 r 2")
	s.Exec("clear")

	dec := yaml.NewDecoder(strings.NewReader(out.String()))
	var ok record
	require.NoError(t, dec.Decode(&ok))
	assert.Equal(t, "2 + 3 * 4", ok.Expression)
	require.NotNil(t, ok.Result)
	assert.Equal(t, 14.0, *ok.Result)
	assert.Empty(t, ok.Error)
	assert.Equal(t, []stepRecord{{Op: "3 * 4", Result: 12}, {Op: "2 + 12", Result: 14}}, ok.Steps)

	var bad record
	require.NoError(t, dec.Decode(&bad))
	assert.Equal(t, "-4 r 2", bad.Expression)
	assert.Nil(t, bad.Result)
	assert.Equal(t, "4: even root of negative number in -4 r 2", bad.Error)
	assert.Equal(t, calc.EvenRootOfNegative.Error(), bad.Kind)
	assert.Empty(t, bad.Steps)

	assert.True(t, strings.HasSuffix(out.String(), "# History cleared\n"))
}

func TestNewRendererFormat(t *testing.T) {
	_, err := NewRenderer(io.Discard, "json", false)
	assert.Error(t, err)
	cfg := plainConfig()
	cfg.Format = "xml"
	_, err = New(io.Discard, cfg, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestHelp(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Help(&b))
	text := b.String()
	for _, want := range []string{"sqrt,", "Round,", "stdev,", "Constants: e, pi", "quit, exit, q"} {
		assert.Contains(t, text, want)
	}
	assert.NotContains(t, text, " round,")
	for _, line := range strings.Split(text, "\n") {
		assert.LessOrEqual(t, len(line), 72, "line %q", line)
	}
}

func TestCallableName(t *testing.T) {
	assert.Equal(t, "Round", CallableName("round"))
	assert.Equal(t, "sqrt", CallableName("sqrt"))
	// Every function must be reachable by the name Help and Complete give.
	for _, name := range calc.Functions() {
		toks, err := calc.Tokenize(CallableName(name))
		require.NoError(t, err)
		require.Len(t, toks, 1, "%s does not read as one name", name)
		assert.Equal(t, calc.TokenIdent, toks[0].Kind)
	}
}

func TestComplete(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"2 +", nil},
		{"x", nil},
		{"sq", []string{"sqrt("}},
		{"2 * SQ", []string{"2 * sqrt("}},
		{"me", []string{"mean(", "median("}},
		{"ro", []string{"Round("}},
		{"1+p", []string{"1+perm(", "1+pi"}},
		{"3×co", []string{"3×comb(", "3×cos(", "3×cosh("}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Complete(c.line), "line %q", c.line)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.toml"), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(dir, "config.toml")
	src := `prompt = ">> "
color = false
format = "yaml"
details = true
log_level = "debug"
unknown = 1
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	cfg, err = LoadConfig(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Config{Prompt: ">> ", Color: false, Format: FormatYAML, Details: true, LogLevel: "debug"}, cfg)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())

	partial := filepath.Join(dir, "partial.toml")
	require.NoError(t, os.WriteFile(partial, []byte("details = true\n"), 0o644))
	cfg, err = LoadConfig(partial, zerolog.Nop())
	require.NoError(t, err)
	want := DefaultConfig()
	want.Details = true
	assert.Equal(t, want, cfg)

	for name, src := range map[string]string{
		"format.toml": `format = "xml"`,
		"level.toml":  `log_level = "loud"`,
		"syntax.toml": `prompt = `,
		"type.toml":   `color = "yes"`,
	} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(src), 0o644))
		_, err := LoadConfig(p, zerolog.Nop())
		assert.Error(t, err, "%s", name)
	}
}

func TestConfigLevel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
	cfg.LogLevel = ""
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
	cfg.LogLevel = "nonsense"
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
	cfg.LogLevel = "error"
	assert.Equal(t, zerolog.ErrorLevel, cfg.Level())
}
