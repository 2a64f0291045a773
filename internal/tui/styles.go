package tui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/wesen/boxline/pkg/canvas"
)

// c is shorthand for lipgloss.Color.
func c(hex string) color.Color { return lipgloss.Color(hex) }

// Paper-and-ink palette.
var (
	colorBG     = c("#101418")
	colorChrome = c("#1b232b")
)

// Cell styles used on the canvas buffer.
const (
	styleBG canvas.StyleKey = iota
	styleGrid
	styleEdge
	styleBand
	styleNode
	styleNodeFocus
	styleNodeSource
)

var bufStyles = map[canvas.StyleKey]lipgloss.Style{
	styleBG:         lipgloss.NewStyle().Background(colorBG),
	styleGrid:       lipgloss.NewStyle().Foreground(c("#2a343e")).Background(colorBG),
	styleEdge:       lipgloss.NewStyle().Foreground(c("#8fa3b5")).Background(colorBG),
	styleBand:       lipgloss.NewStyle().Foreground(c("#f2c14e")).Background(colorBG),
	styleNode:       lipgloss.NewStyle().Foreground(c("#d8dee9")).Background(c("#1c252e")),
	styleNodeFocus:  lipgloss.NewStyle().Foreground(c("#88c0d0")).Background(c("#1f2d38")).Bold(true),
	styleNodeSource: lipgloss.NewStyle().Foreground(c("#f2c14e")).Background(c("#2b2718")).Bold(true),
}

var (
	toolbarStyle = lipgloss.NewStyle().
			Background(colorChrome).
			Foreground(c("#88c0d0")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Background(colorChrome).
			Foreground(c("#7b8794"))

	errorStyle = lipgloss.NewStyle().
			Background(colorChrome).
			Foreground(c("#bf616a")).
			Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c("#88c0d0")).
			Background(colorChrome).
			Padding(0, 1).
			Width(44)

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(c("#88c0d0")).
			Background(colorChrome).
			Bold(true)

	modalHintStyle = lipgloss.NewStyle().
			Foreground(c("#4c566a")).
			Background(colorChrome).
			Italic(true)
)
