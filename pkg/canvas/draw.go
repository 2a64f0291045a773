package canvas

import "image"

// Border is the set of runes used to outline a box.
type Border struct {
	H, V           rune
	TL, TR, BL, BR rune
}

// Box outlines.
var (
	NormalBorder  = Border{H: '─', V: '│', TL: '┌', TR: '┐', BL: '└', BR: '┘'}
	RoundedBorder = Border{H: '─', V: '│', TL: '╭', TR: '╮', BL: '╰', BR: '╯'}
	DoubleBorder  = Border{H: '═', V: '║', TL: '╔', TR: '╗', BL: '╚', BR: '╝'}
)

// Box outlines r (Max exclusive) and clears its interior. Boxes smaller
// than 2×2 collapse to a single marker cell at r.Min.
func (b *Buffer) Box(r image.Rectangle, border Border, style StyleKey) {
	if r.Dx() < 2 || r.Dy() < 2 {
		b.Set(r.Min.X, r.Min.Y, '▪', style)
		return
	}
	b.FillRect(r.Inset(1), style)

	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	for x := x0 + 1; x < x1; x++ {
		b.Set(x, y0, border.H, style)
		b.Set(x, y1, border.H, style)
	}
	for y := y0 + 1; y < y1; y++ {
		b.Set(x0, y, border.V, style)
		b.Set(x1, y, border.V, style)
	}
	b.Set(x0, y0, border.TL, style)
	b.Set(x1, y0, border.TR, style)
	b.Set(x0, y1, border.BL, style)
	b.Set(x1, y1, border.BR, style)
}

// Line draws a Bresenham line with a direction-dependent character per
// point.
func (b *Buffer) Line(x0, y0, x1, y1 int, style StyleKey) {
	pts := Bresenham(x0, y0, x1, y1)
	for i, p := range pts {
		b.Set(p.X, p.Y, pointChar(pts, i), style)
	}
}

// DashedLine draws a line skipping every third point.
func (b *Buffer) DashedLine(x0, y0, x1, y1 int, style StyleKey) {
	pts := Bresenham(x0, y0, x1, y1)
	for i, p := range pts {
		if i%3 != 2 {
			b.Set(p.X, p.Y, pointChar(pts, i), style)
		}
	}
}

// Grid dots the buffer every spacingX columns and spacingY rows of the
// underlying plane, where buffer cell (0,0) sits at plane (offX, offY).
func (b *Buffer) Grid(offX, offY, spacingX, spacingY int, style StyleKey) {
	for y := 0; y < b.H; y++ {
		if mod(y+offY, spacingY) != 0 {
			continue
		}
		for x := 0; x < b.W; x++ {
			if mod(x+offX, spacingX) == 0 {
				b.Set(x, y, '·', style)
			}
		}
	}
}

// pointChar picks the line character for point i from the direction to
// its neighbour.
func pointChar(pts []image.Point, i int) rune {
	var dx, dy int
	if i < len(pts)-1 {
		dx = pts[i+1].X - pts[i].X
		dy = pts[i+1].Y - pts[i].Y
	} else if i > 0 {
		dx = pts[i].X - pts[i-1].X
		dy = pts[i].Y - pts[i-1].Y
	}
	return LineChar(dx, dy)
}

// mod is a non-negative modulus.
func mod(a, m int) int {
	if m == 0 {
		return 0
	}
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
