// Package canvas is a 2-D grid of styled terminal cells with the drawing
// primitives the diagram view needs: clipped text, box outlines, straight
// and dashed lines, and a background dot grid.
//
// Each cell holds a rune and a StyleKey. Colors are resolved only at
// render time, from a map[StyleKey]lipgloss.Style supplied by the caller.
//
// All runes are assumed to be single-width.
package canvas

import "image"

// StyleKey identifies a visual style.
type StyleKey int

// Cell is a single character with its style.
type Cell struct {
	Ch    rune
	Style StyleKey
}

// Buffer is a W×H grid of cells, indexed [row][col].
type Buffer struct {
	W, H  int
	Cells [][]Cell
}

// New creates a buffer of spaces in the given style. Negative sizes are
// treated as zero.
func New(w, h int, bg StyleKey) *Buffer {
	w, h = max(w, 0), max(h, 0)
	b := &Buffer{W: w, H: h, Cells: make([][]Cell, h)}
	for y := range b.Cells {
		b.Cells[y] = make([]Cell, w)
	}
	b.Fill(bg)
	return b
}

// Bounds returns the buffer rectangle.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.W, b.H)
}

// InBounds reports whether (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Set writes one cell. Writes outside the buffer are dropped.
func (b *Buffer) Set(x, y int, ch rune, style StyleKey) {
	if b.InBounds(x, y) {
		b.Cells[y][x] = Cell{Ch: ch, Style: style}
	}
}

// SetString writes s left to right from (x, y), clipped to the buffer.
func (b *Buffer) SetString(x, y int, s string, style StyleKey) {
	i := 0
	for _, ch := range s {
		b.Set(x+i, y, ch, style)
		i++
	}
}

// Text writes s from (x, y) but never more than maxW cells, ending with
// an ellipsis when s is cut.
func (b *Buffer) Text(x, y, maxW int, s string, style StyleKey) {
	if maxW <= 0 {
		return
	}
	runes := []rune(s)
	if len(runes) > maxW {
		runes = append(runes[:maxW-1], '…')
	}
	b.SetString(x, y, string(runes), style)
}

// Fill resets every cell to a space in style.
func (b *Buffer) Fill(style StyleKey) {
	for y := range b.Cells {
		for x := range b.Cells[y] {
			b.Cells[y][x] = Cell{Ch: ' ', Style: style}
		}
	}
}

// FillRect paints spaces over r, clipped to the buffer.
func (b *Buffer) FillRect(r image.Rectangle, style StyleKey) {
	r = r.Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Cells[y][x] = Cell{Ch: ' ', Style: style}
		}
	}
}

// String returns the buffer's characters without styling, rows joined
// by newlines.
func (b *Buffer) String() string {
	out := make([]rune, 0, (b.W+1)*b.H)
	for y, row := range b.Cells {
		if y > 0 {
			out = append(out, '\n')
		}
		for _, c := range row {
			out = append(out, c.Ch)
		}
	}
	return string(out)
}
