package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bcdetect/internal/classifier"
	"github.com/abhisek/bcdetect/internal/diagnosis"
	"github.com/abhisek/bcdetect/internal/features"
	"github.com/abhisek/bcdetect/internal/router"
)

func newTestApp(responses ...classifier.MockResponse) AppModel {
	mock := classifier.NewMockClassifier(responses...)
	svc := diagnosis.NewService(features.BreastCancer(), mock, nil)
	return newAppModel(Options{Service: svc, PrefillDefaults: true})
}

func resize(m AppModel, w, h int) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(AppModel)
}

func TestView_TooSmall(t *testing.T) {
	m := resize(newTestApp(), 60, 20)
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected the minimum size message")
	}
}

func TestView_ShowsFormAndModel(t *testing.T) {
	m := resize(newTestApp(), 100, 40)
	content := m.render()
	for _, want := range []string{"Tumor measurements", "mock", "mean radius", "Predict"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestApp()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestEscAtRootIsNoop(t *testing.T) {
	m := newTestApp()
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc on the form should do nothing")
	}
}

func TestDecidedFlowAndBack(t *testing.T) {
	m := resize(newTestApp(classifier.MockResponse{Labels: []int64{0}}), 100, 40)

	var model tea.Model = m
	model, cmd := model.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	model, cmd = model.Update(cmd())
	model, _ = model.Update(cmd())

	m = model.(AppModel)
	if m.router.Depth() != 2 {
		t.Fatalf("expected result screen on top, depth = %d", m.router.Depth())
	}
	if !strings.Contains(m.render(), "BENIGN") {
		t.Error("expected benign result in view")
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("esc on the result should pop")
	}
}
