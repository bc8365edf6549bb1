package form

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bcdetect/internal/classifier"
	"github.com/abhisek/bcdetect/internal/diagnosis"
	"github.com/abhisek/bcdetect/internal/features"
	"github.com/abhisek/bcdetect/internal/router"
	"github.com/abhisek/bcdetect/internal/screens/result"
)

func newTestForm(prefill bool, responses ...classifier.MockResponse) (*FormScreen, *classifier.MockClassifier) {
	mock := classifier.NewMockClassifier(responses...)
	svc := diagnosis.NewService(features.BreastCancer(), mock, nil)
	return New(svc, prefill), mock
}

var (
	keyEnter    = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyTab      = tea.KeyPressMsg{Code: tea.KeyTab}
	keyShiftTab = tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	keyDown     = tea.KeyPressMsg{Code: tea.KeyDown}
	keyUp       = tea.KeyPressMsg{Code: tea.KeyUp}
	keyReset    = tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
)

// submitAndWait presses Enter, runs the submission synchronously and feeds
// the outcome back into the form.
func submitAndWait(t *testing.T, f *FormScreen) tea.Cmd {
	t.Helper()
	_, cmd := f.Update(keyEnter)
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	if !f.pending {
		t.Error("form should be pending while the submission runs")
	}
	msg := cmd()
	done, ok := msg.(submitDoneMsg)
	if !ok {
		t.Fatalf("expected submitDoneMsg, got %T", msg)
	}
	_, next := f.Update(done)
	return next
}

func TestNew_Prefill(t *testing.T) {
	f, _ := newTestForm(true)
	if got := f.inputs[0].Value(); got != "20.57" {
		t.Errorf("mean radius = %q, want 20.57", got)
	}
	if got := f.inputs[23].Value(); got != "2019" {
		t.Errorf("worst area = %q, want 2019", got)
	}

	blank, _ := newTestForm(false)
	for i, in := range blank.inputs {
		if in.Value() != "" {
			t.Errorf("field %d = %q, want blank", i, in.Value())
		}
	}
}

func TestSubmit_DecidedPushesResult(t *testing.T) {
	f, mock := newTestForm(true, classifier.MockResponse{Labels: []int64{1}})

	cmd := submitAndWait(t, f)
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*result.ResultScreen); !ok {
		t.Errorf("expected result screen, got %T", push.Screen)
	}
	if f.pending || f.message != "" {
		t.Errorf("form should be idle with no message, got pending=%v message=%q", f.pending, f.message)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 classifier call, got %d", mock.CallCount())
	}
}

func TestSubmit_BlankFormShowsMessage(t *testing.T) {
	f, mock := newTestForm(false, classifier.MockResponse{Labels: []int64{1}})

	submitAndWait(t, f)

	if f.message != diagnosis.IncompleteMessage {
		t.Errorf("got message %q, want %q", f.message, diagnosis.IncompleteMessage)
	}
	if len(f.missing) != 30 {
		t.Errorf("got %d missing fields, want 30", len(f.missing))
	}
	if mock.CallCount() != 0 {
		t.Error("classifier should not be called for an incomplete form")
	}
	if !strings.Contains(f.View(100, 40), diagnosis.IncompleteMessage) {
		t.Error("view should render the incomplete message")
	}
}

func TestSubmit_FocusesFirstMissingField(t *testing.T) {
	f, _ := newTestForm(true)
	f.inputs[7].Model.SetValue("")

	submitAndWait(t, f)

	if f.focus != 7 {
		t.Errorf("focus = %d, want 7", f.focus)
	}
	if !f.missing["mean concave points"] {
		t.Error("mean concave points should be marked missing")
	}
}

func TestSubmit_ClassifierFailure(t *testing.T) {
	f, _ := newTestForm(true, classifier.MockResponse{Err: errors.New("model not fitted")})

	cmd := submitAndWait(t, f)

	if cmd != nil {
		if _, ok := cmd().(router.PushScreenMsg); ok {
			t.Fatal("failed prediction must not show a result")
		}
	}
	if f.message != "Error in prediction: model not fitted" {
		t.Errorf("got message %q", f.message)
	}
	if f.fatal {
		t.Error("classifier failure is not fatal")
	}
}

func TestSubmit_InvalidNumberFocusesField(t *testing.T) {
	f, mock := newTestForm(true)
	f.inputs[3].Model.SetValue(".")

	submitAndWait(t, f)

	if f.focus != 3 {
		t.Errorf("focus = %d, want 3", f.focus)
	}
	if !strings.Contains(f.message, "mean area") {
		t.Errorf("message %q should name the field", f.message)
	}
	if mock.CallCount() != 0 {
		t.Error("classifier should not be called for invalid input")
	}
}

func TestPendingIgnoresKeys(t *testing.T) {
	f, _ := newTestForm(true)
	f.Update(keyEnter)

	if f.Status() != "Predicting..." {
		t.Errorf("status = %q", f.Status())
	}
	if _, cmd := f.Update(keyEnter); cmd != nil {
		t.Error("a second Enter while pending should be ignored")
	}
	f.Update(keyTab)
	if f.focus != 0 {
		t.Errorf("focus moved to %d while pending", f.focus)
	}
}

func TestNavigation(t *testing.T) {
	f, _ := newTestForm(true)

	f.Update(keyTab)
	f.Update(keyDown)
	if f.focus != 2 {
		t.Errorf("focus = %d, want 2", f.focus)
	}

	f.Update(keyUp)
	f.Update(keyShiftTab)
	if f.focus != 0 {
		t.Errorf("focus = %d, want 0", f.focus)
	}

	f.Update(keyShiftTab)
	if f.focus != len(f.inputs) || !f.button.Focused {
		t.Errorf("shift+tab from the first field should wrap to the button, focus = %d", f.focus)
	}

	f.Update(keyTab)
	if f.focus != 0 || f.button.Focused {
		t.Errorf("tab from the button should wrap to the first field, focus = %d", f.focus)
	}
}

func TestTypingFiltersNonDecimal(t *testing.T) {
	f, _ := newTestForm(false)
	for _, r := range "1x4.2" {
		f.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	if got := f.inputs[0].Value(); got != "14.2" {
		t.Errorf("got %q, want 14.2", got)
	}
}

func TestReset(t *testing.T) {
	f, _ := newTestForm(true)
	f.inputs[0].Model.SetValue("99")
	f.message = "stale"

	f.Update(keyReset)

	if got := f.inputs[0].Value(); got != "20.57" {
		t.Errorf("got %q, want 20.57 after reset", got)
	}
	if f.message != "" {
		t.Errorf("message should be cleared, got %q", f.message)
	}
}

func TestView_WindowsFields(t *testing.T) {
	f, _ := newTestForm(true)

	view := f.View(100, 16)
	if !strings.Contains(view, "mean radius") {
		t.Error("first field should be visible")
	}
	if strings.Contains(view, "worst fractal dimension") {
		t.Error("last field should be scrolled out of a short view")
	}
	if !strings.Contains(view, "more") {
		t.Error("expected a scroll indicator")
	}

	for i := 0; i < len(f.inputs)-1; i++ {
		f.Update(keyDown)
	}
	view = f.View(100, 16)
	if !strings.Contains(view, "worst fractal dimension") {
		t.Error("focused last field should be visible")
	}
}

func TestKeyHints(t *testing.T) {
	f, _ := newTestForm(true)
	if len(f.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
	if f.Title() != "Tumor measurements" {
		t.Errorf("title = %q", f.Title())
	}
}
