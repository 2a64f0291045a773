package canvas

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Render converts the buffer into a styled string. Consecutive cells with
// the same StyleKey are merged into one run and rendered with a single
// Style.Render call. Keys missing from styles render unstyled.
//
// Rows are joined with "\n". An empty buffer returns "".
func (b *Buffer) Render(styles map[StyleKey]lipgloss.Style) string {
	if b.W == 0 || b.H == 0 {
		return ""
	}

	lines := make([]string, b.H)
	run := make([]rune, 0, b.W)
	for y, row := range b.Cells {
		var sb strings.Builder
		flush := func(style StyleKey) {
			if len(run) == 0 {
				return
			}
			if s, ok := styles[style]; ok {
				sb.WriteString(s.Render(string(run)))
			} else {
				sb.WriteString(string(run))
			}
			run = run[:0]
		}

		cur := row[0].Style
		for _, c := range row {
			if c.Style != cur {
				flush(cur)
				cur = c.Style
			}
			run = append(run, c.Ch)
		}
		flush(cur)
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
