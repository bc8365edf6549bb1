package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bcdetect/internal/diagnosis"
	"github.com/abhisek/bcdetect/internal/features"
	"github.com/abhisek/bcdetect/internal/router"
	"github.com/abhisek/bcdetect/internal/screen"
	"github.com/abhisek/bcdetect/internal/screens/result"
	"github.com/abhisek/bcdetect/internal/ui/components"
	"github.com/abhisek/bcdetect/internal/ui/layout"
	"github.com/abhisek/bcdetect/internal/ui/theme"
)

// labelWidth fits the longest feature name ("worst fractal dimension").
const labelWidth = 26

// submitDoneMsg carries the outcome of a background submission.
type submitDoneMsg struct {
	out diagnosis.Outcome
}

// FormScreen collects the 30 measurements and submits them for prediction.
type FormScreen struct {
	svc     *diagnosis.Service
	specs   []features.Spec
	initial []string
	inputs  []components.DecimalInput
	button  components.Button

	focus   int // len(inputs) is the Predict button
	pending bool
	message string
	fatal   bool
	missing map[string]bool
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)
var _ screen.StatusProvider = (*FormScreen)(nil)

// New creates the form. With prefill, every field starts at its documented
// default; otherwise fields start blank and read as the empty sentinel.
func New(svc *diagnosis.Service, prefill bool) *FormScreen {
	specs := svc.Schema().Specs()
	f := &FormScreen{
		svc:     svc,
		specs:   specs,
		initial: make([]string, len(specs)),
		inputs:  make([]components.DecimalInput, len(specs)),
		button:  components.NewButton("Predict"),
		missing: make(map[string]bool),
	}
	for i, sp := range specs {
		if prefill && sp.Default != nil {
			f.initial[i] = components.FormatValue(*sp.Default)
		}
		f.inputs[i] = components.NewDecimalInput("0.0", f.initial[i])
	}
	f.inputs[0].Focus()
	return f
}

func (f *FormScreen) Init() tea.Cmd {
	return nil
}

func (f *FormScreen) Title() string {
	return "Tumor measurements"
}

func (f *FormScreen) Status() string {
	if f.pending {
		return "Predicting..."
	}
	return ""
}

func (f *FormScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Predict"},
		{Key: "Ctrl+R", Description: "Reset"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		return f, f.handleOutcome(msg.out)

	case tea.KeyPressMsg:
		if f.pending {
			return f, nil
		}
		switch msg.String() {
		case "tab", "down":
			return f, f.moveFocus(1)
		case "shift+tab", "up":
			return f, f.moveFocus(-1)
		case "enter":
			return f, f.submit()
		case "ctrl+r":
			f.reset()
			return f, nil
		}
		if f.focus < len(f.inputs) {
			var cmd tea.Cmd
			f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
			return f, cmd
		}
	}
	return f, nil
}

func (f *FormScreen) moveFocus(delta int) tea.Cmd {
	n := len(f.inputs) + 1
	return f.setFocus(((f.focus+delta)%n + n) % n)
}

func (f *FormScreen) setFocus(i int) tea.Cmd {
	if f.focus < len(f.inputs) {
		f.inputs[f.focus].Blur()
	}
	f.focus = i
	f.button.Focused = i == len(f.inputs)
	if i < len(f.inputs) {
		return f.inputs[i].Focus()
	}
	return nil
}

func (f *FormScreen) reset() {
	for i := range f.inputs {
		f.inputs[i].Model.SetValue(f.initial[i])
	}
	f.message = ""
	f.fatal = false
	f.missing = make(map[string]bool)
}

// submit snapshots the field values and runs the submission off the
// update loop.
func (f *FormScreen) submit() tea.Cmd {
	values := make(fieldValues, len(f.specs))
	for i, sp := range f.specs {
		v, err := f.inputs[i].FloatValue()
		values[sp.Name] = fieldValue{v: v, err: err}
	}

	f.pending = true
	f.message = ""
	svc := f.svc
	return func() tea.Msg {
		return submitDoneMsg{out: svc.Submit(context.Background(), values)}
	}
}

func (f *FormScreen) handleOutcome(out diagnosis.Outcome) tea.Cmd {
	f.pending = false
	f.missing = make(map[string]bool, len(out.Missing))
	for _, name := range out.Missing {
		f.missing[name] = true
	}

	if out.State == diagnosis.StateDecided {
		f.message = ""
		f.fatal = false
		next := result.New(out)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}

	f.message = diagnosis.UserMessage(out.Err)
	f.fatal = diagnosis.IsFatal(out.Err)

	var inv *diagnosis.ErrInvalidInput
	if errors.As(out.Err, &inv) {
		if i := f.svc.Schema().Index(inv.Feature); i >= 0 {
			return f.setFocus(i)
		}
	}
	if len(out.Missing) > 0 {
		return f.setFocus(f.svc.Schema().Index(out.Missing[0]))
	}
	return nil
}

func (f *FormScreen) View(width, height int) string {
	var b strings.Builder

	intro := fmt.Sprintf("Enter the %d cell nucleus measurements, then press Enter to predict.", len(f.specs))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(intro)))
	b.WriteString("\n\n")

	// Intro, button and message take 6 rows; the rest is for fields.
	rows := max(height-6, 1)
	focusRow := min(f.focus, len(f.inputs)-1)
	start, end := layout.Window(len(f.inputs), focusRow, rows)

	var fields strings.Builder
	for i := start; i < end; i++ {
		fields.WriteString(f.renderField(i))
		if i < end-1 {
			fields.WriteString("\n")
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, fields.String()))
	b.WriteString("\n")

	more := ""
	if start > 0 {
		more += fmt.Sprintf("↑ %d more  ", start)
	}
	if end < len(f.inputs) {
		more += fmt.Sprintf("↓ %d more", len(f.inputs)-end)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(more)))
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, f.button.View()))
	b.WriteString("\n")

	switch {
	case f.pending:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("Predicting...")))
	case f.message != "" && f.fatal:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.ErrorMessage.Render(f.message)))
	case f.message != "":
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Message.Render(f.message)))
	}

	return b.String()
}

func (f *FormScreen) renderField(i int) string {
	name := f.specs[i].Name

	labelStyle := theme.FieldLabel
	if i == f.focus {
		labelStyle = theme.FieldLabelFocused
	}
	marker := "  "
	if f.missing[name] {
		marker = theme.FieldMissing.Render("• ")
	}

	label := labelStyle.Width(labelWidth).Render(name)
	return marker + label + " " + f.inputs[i].View()
}

// fieldValues is a submission snapshot keyed by feature name.
type fieldValues map[string]fieldValue

type fieldValue struct {
	v   float64
	err error
}

func (f fieldValues) NumberInput(name string, _ diagnosis.Constraints) (float64, error) {
	fv := f[name]
	return fv.v, fv.err
}
