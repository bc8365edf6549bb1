package components

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// DecimalInput wraps bubbles/textinput for non-negative decimal entry.
type DecimalInput struct {
	Model textinput.Model
}

// NewDecimalInput creates a blurred decimal input seeded with value.
func NewDecimalInput(placeholder, value string) DecimalInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 24
	ti.SetValue(value)
	return DecimalInput{Model: ti}
}

// Update handles messages. Keys that cannot appear in a decimal are dropped.
func (d DecimalInput) Update(msg tea.Msg) (DecimalInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.Text != "" {
		for _, r := range kmsg.Text {
			if !isDecimalRune(r) {
				return d, nil
			}
		}
		if strings.Contains(kmsg.Text, ".") && strings.Contains(d.Model.Value(), ".") {
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	return d, cmd
}

func isDecimalRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

// View renders the input.
func (d DecimalInput) View() string {
	return d.Model.View()
}

// Focus focuses the input.
func (d *DecimalInput) Focus() tea.Cmd {
	return d.Model.Focus()
}

// Blur removes focus from the input.
func (d *DecimalInput) Blur() {
	d.Model.Blur()
}

// Value returns the raw text.
func (d DecimalInput) Value() string {
	return d.Model.Value()
}

// FloatValue parses the text. A blank field reads as 0.
func (d DecimalInput) FloatValue() (float64, error) {
	raw := strings.TrimSpace(d.Model.Value())
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return v, nil
}

// FormatValue renders v the way a user would type it.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
