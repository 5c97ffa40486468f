package output

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("39")  // Blue
	ColorText    = lipgloss.Color("34")  // Green
	ColorBinary  = lipgloss.Color("214") // Orange
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().Padding(0, 1)

	ClobStyle = CellStyle.Foreground(ColorText)

	BlobStyle = CellStyle.Foreground(ColorBinary)

	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	BorderStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)
