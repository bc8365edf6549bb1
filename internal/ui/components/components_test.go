package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func typeText(d DecimalInput, s string) DecimalInput {
	for _, r := range s {
		d, _ = d.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return d
}

func TestDecimalInput_FiltersKeys(t *testing.T) {
	d := NewDecimalInput("0.0", "")
	d.Focus()
	d = typeText(d, "1a2.3.4-")

	if got := d.Value(); got != "12.34" {
		t.Errorf("got %q, want %q", got, "12.34")
	}
}

func TestDecimalInput_FloatValue(t *testing.T) {
	tests := []struct {
		value   string
		want    float64
		wantErr bool
	}{
		{"20.57", 20.57, false},
		{"", 0, false},
		{"  ", 0, false},
		{".5", 0.5, false},
		{".", 0, true},
	}
	for _, tt := range tests {
		d := NewDecimalInput("", tt.value)
		got, err := d.FloatValue()
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := map[float64]string{
		20.57:   "20.57",
		2019.0:  "2019",
		0.08902: "0.08902",
		0:       "0",
	}
	for v, want := range tests {
		if got := FormatValue(v); got != want {
			t.Errorf("FormatValue(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestButtonView(t *testing.T) {
	b := NewButton("Predict")
	unfocused := b.View()
	b.Focused = true
	if b.View() == unfocused {
		t.Error("focused button should render differently")
	}
}
