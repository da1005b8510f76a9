package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorAccent  = lipgloss.Color("39")
	ColorMuted   = lipgloss.Color("241")
	ColorOK      = lipgloss.Color("42")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("196")
	ColorTagBg   = lipgloss.Color("237")
)

// Shared styles.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true)

	TagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(ColorTagBg).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	ValueStyle = lipgloss.NewStyle()
	InfoStyle  = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
	OKStyle    = lipgloss.NewStyle().Foreground(ColorOK)
	LinkStyle  = lipgloss.NewStyle().Foreground(ColorAccent).Underline(true)

	TabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(ColorMuted)

	ActiveTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(ColorAccent).
			Underline(true)

	SkeletonStyle = lipgloss.NewStyle().Foreground(ColorTagBg)

	PaginationStyle = lipgloss.NewStyle().Foreground(ColorAccent)

	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorMuted).
				BorderBottom(true).
				Bold(true)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))
)
