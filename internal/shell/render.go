package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// Renderer writes evaluation results in one output format.
type Renderer struct {
	w      io.Writer
	format string
	// docs counts YAML documents written so far.
	docs int

	result *color.Color
	fail   *color.Color
	label  *color.Color
	note   *color.Color
}

// NewRenderer creates a renderer writing to w. If colored is false, output
// never contains color escapes. Otherwise colors follow the terminal, as
// decided by the color package.
func NewRenderer(w io.Writer, format string, colored bool) (*Renderer, error) {
	switch format {
	case FormatText, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	r := &Renderer{
		w:      w,
		format: format,
		result: color.New(color.FgGreen, color.Bold),
		fail:   color.New(color.FgRed),
		label:  color.New(color.FgCyan),
		note:   color.New(color.FgYellow),
	}
	if !colored {
		for _, c := range []*color.Color{r.result, r.fail, r.label, r.note} {
			c.DisableColor()
		}
	}
	return r, nil
}

// record is the YAML form of one evaluation.
type record struct {
	Expression string       `yaml:"expression"`
	Result     *float64     `yaml:"result,omitempty"`
	Error      string       `yaml:"error,omitempty"`
	Kind       string       `yaml:"kind,omitempty"`
	Steps      []stepRecord `yaml:"steps,omitempty"`
}

type stepRecord struct {
	Op     string  `yaml:"op"`
	Result float64 `yaml:"result"`
}

// Result writes a successful evaluation of expr. steps is empty unless the
// evaluation was detailed.
func (r *Renderer) Result(expr string, v float64, steps []calc.Step) error {
	if r.format == FormatYAML {
		rec := record{Expression: calc.Spacing(expr), Result: &v}
		for _, s := range steps {
			rec.Steps = append(rec.Steps, stepRecord{Op: calc.Spacing(s.Op), Result: s.Result})
		}
		return r.doc(rec)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "  %s = %s\n", calc.Spacing(expr), r.result.Sprint(calc.FormatNumber(v)))
	if len(steps) > 0 {
		b.WriteString("\n  " + r.label.Sprint("Step-by-step evaluation:") + "\n")
		for i, s := range steps {
			fmt.Fprintf(&b, "  %s %s = %s\n", r.label.Sprintf("Step %d:", i+1), calc.Spacing(s.Op), calc.FormatNumber(s.Result))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Error writes a failed evaluation of expr.
func (r *Renderer) Error(expr string, err error) error {
	if r.format == FormatYAML {
		rec := record{Expression: calc.Spacing(expr), Error: err.Error()}
		if k := calc.KindOf(err); k != 0 {
			rec.Kind = k.Error()
		}
		return r.doc(rec)
	}
	_, werr := fmt.Fprintf(r.w, "  %s = %s\n", calc.Spacing(expr), r.fail.Sprint("Error: "+err.Error()))
	return werr
}

// Message writes a note to the user. In YAML output, the note is a comment.
func (r *Renderer) Message(msg string) error {
	if r.format == FormatYAML {
		_, err := io.WriteString(r.w, "# "+msg+"\n")
		return err
	}
	_, err := io.WriteString(r.w, r.note.Sprint(msg)+"\n")
	return err
}

func (r *Renderer) doc(rec record) error {
	b, err := yaml.Marshal(rec)
	if err != nil {
		return err
	}
	if r.docs > 0 {
		if _, err := io.WriteString(r.w, "---\n"); err != nil {
			return err
		}
	}
	r.docs++
	_, err = r.w.Write(b)
	return err
}
