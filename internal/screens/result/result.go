package result

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bcdetect/internal/diagnosis"
	"github.com/abhisek/bcdetect/internal/router"
	"github.com/abhisek/bcdetect/internal/screen"
	"github.com/abhisek/bcdetect/internal/ui/layout"
	"github.com/abhisek/bcdetect/internal/ui/theme"
)

// ResultScreen shows the diagnosis and its guidance block.
type ResultScreen struct {
	out    diagnosis.Outcome
	offset int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a result screen for a decided outcome.
func New(out diagnosis.Outcome) *ResultScreen {
	return &ResultScreen{out: out}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Diagnosis"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "New prediction"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		case "down", "j":
			s.offset++
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	lines := s.lines(width)

	visible := max(height, 1)
	maxOffset := max(len(lines)-visible, 0)
	s.offset = min(s.offset, maxOffset)
	end := min(s.offset+visible, len(lines))

	return strings.Join(lines[s.offset:end], "\n")
}

func (s *ResultScreen) lines(width int) []string {
	if s.out.Result == nil {
		return []string{theme.Hint.Render("No diagnosis available.")}
	}

	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	textWidth := max(min(width-8, 72), 20)

	labelStyle := theme.Benign
	if s.out.Result.Label == diagnosis.LabelMalignant {
		labelStyle = theme.Malignant
	}

	out := []string{
		"",
		center(theme.Body.Render("The tumor is likely:")),
		center(labelStyle.Render(strings.ToUpper(string(s.out.Result.Label)))),
		"",
	}

	if g := s.out.Guidance; g != nil {
		out = append(out, center(theme.Title.Render(g.Title)))
		summary := lipgloss.NewStyle().Width(textWidth).Foreground(theme.TextDim).Render(g.Summary)
		for _, l := range strings.Split(summary, "\n") {
			out = append(out, center(l))
		}
		for _, sec := range g.Sections {
			out = append(out, "")
			out = append(out, center(theme.Heading.Width(textWidth).Render(sec.Heading)))
			for _, item := range sec.Items {
				bullet := theme.Body.Width(textWidth).Render("• " + item)
				for _, l := range strings.Split(bullet, "\n") {
					out = append(out, center(l))
				}
			}
		}
	}

	out = append(out, "", center(theme.Hint.Render("Request "+s.out.RequestID)))
	return out
}
