package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/bcdetect/internal/diagnosis"
	"github.com/abhisek/bcdetect/internal/router"
	"github.com/abhisek/bcdetect/internal/screen"
	"github.com/abhisek/bcdetect/internal/screens/form"
	"github.com/abhisek/bcdetect/internal/ui/layout"
)

// Options configures the terminal app.
type Options struct {
	Service         *diagnosis.Service
	PrefillDefaults bool
	Logger          *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	modelID string
	width   int
	height  int
}

// newAppModel creates a new AppModel with the form screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		router:  router.New(form.New(opts.Service, opts.PrefillDefaults)),
		modelID: opts.Service.ModelID(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	status := m.modelID
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok && sp.Status() != "" {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return kp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Service == nil {
		return fmt.Errorf("app: no diagnosis service")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("tui started", zap.String("model", opts.Service.ModelID()))
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		logger.Error("tui failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	logger.Info("tui exited")
	return nil
}
