package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: calm clinical tones with two strong result colors.
var (
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Heading = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Form fields
var (
	FieldLabel = lipgloss.NewStyle().
			Foreground(TextDim)

	FieldLabelFocused = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true)

	FieldMissing = lipgloss.NewStyle().
			Foreground(Accent)

	Message = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	ErrorMessage = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Diagnosis
var (
	Malignant = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Benign = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Padding(0, 2)
)
