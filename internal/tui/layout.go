package tui

import (
	"image"
	"strings"

	"charm.land/lipgloss/v2"
)

// layout splits the terminal into a one-row toolbar, a one-row footer and
// the canvas between them.
type layout struct {
	toolbar, canvas, footer image.Rectangle
}

func computeLayout(w, h int) layout {
	var b regionBuilder
	b.w, b.h = w, h
	return layout{
		toolbar: b.top(1),
		footer:  b.bottom(1),
		canvas:  b.remaining(),
	}
}

// regionBuilder hands out rows from the top and bottom of a w×h area.
type regionBuilder struct {
	w, h        int
	used, spare int
}

func (b *regionBuilder) top(rows int) image.Rectangle {
	r := clampRect(image.Rect(0, b.used, b.w, b.used+rows))
	b.used += rows
	return r
}

func (b *regionBuilder) bottom(rows int) image.Rectangle {
	y := b.h - b.spare - rows
	r := clampRect(image.Rect(0, y, b.w, y+rows))
	b.spare += rows
	return r
}

func (b *regionBuilder) remaining() image.Rectangle {
	return clampRect(image.Rect(0, b.used, b.w, b.h-b.spare))
}

// clampRect turns degenerate or negative rectangles into the empty one.
func clampRect(r image.Rectangle) image.Rectangle {
	if r.Min.X < 0 || r.Min.Y < 0 || r.Empty() {
		return image.Rectangle{}
	}
	return r
}

// barLayer renders a one-line bar across r.
func barLayer(r image.Rectangle, content string, style lipgloss.Style, id string) *lipgloss.Layer {
	rendered := style.Width(r.Dx()).MaxWidth(r.Dx()).Render(content)
	return lipgloss.NewLayer(rendered).X(r.Min.X).Y(r.Min.Y).Z(1).ID(id)
}

// fillLayer paints r with style's background.
func fillLayer(r image.Rectangle, style lipgloss.Style, id string) *lipgloss.Layer {
	if r.Empty() {
		return lipgloss.NewLayer("").X(r.Min.X).Y(r.Min.Y).ID(id)
	}
	line := strings.Repeat(" ", r.Dx())
	lines := make([]string, r.Dy())
	for i := range lines {
		lines[i] = line
	}
	return lipgloss.NewLayer(style.Render(strings.Join(lines, "\n"))).
		X(r.Min.X).Y(r.Min.Y).ID(id)
}

// modalLayer centers content, boxed in style, over a w×h screen.
func modalLayer(content string, w, h int, style lipgloss.Style) *lipgloss.Layer {
	rendered := style.Render(content)
	x := max((w-lipgloss.Width(rendered))/2, 0)
	y := max((h-lipgloss.Height(rendered))/2, 0)
	return lipgloss.NewLayer(rendered).X(x).Y(y).Z(100).ID("modal")
}
