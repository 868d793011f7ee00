// Package styles provides shared lipgloss styles for renum's terminal output.
//
// Colors are plain ANSI 256 values; writers wrapped in a colorprofile
// writer downsample or strip them when the terminal cannot show them.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	// Primary is the main accent color (cyan/teal)
	Primary color.Color = lipgloss.Color("62")

	// Accent is the second progress bar color (pink)
	Accent color.Color = lipgloss.Color("212")

	// Warning marks skipped or risky entries (orange)
	Warning color.Color = lipgloss.Color("214")

	// Muted is used for secondary text (gray)
	Muted color.Color = lipgloss.Color("240")
)

var (
	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().Foreground(Muted)
)

// HeaderStyle is used for table headers.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	PaddingRight(2)

// CellStyle pads table cells.
var CellStyle = lipgloss.NewStyle().PaddingRight(2)
