package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/frictionlab/internal/friction"
)

const (
	sceneRows    = 4
	blockWidthPx = 80
)

type cellStyle uint8

const (
	styleBlank cellStyle = iota
	styleMeter
	styleNeedle
	styleConnector
	styleBlock
	styleWeight
	styleSurface
)

type cell struct {
	r  rune
	st cellStyle
}

// canvas is a fixed grid of styled runes. Writes outside the grid are dropped.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, st cellStyle) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, st: st}
}

func (c *canvas) hline(x0, x1, y int, r rune, st cellStyle) {
	for x := x0; x <= x1; x++ {
		c.set(x, y, r, st)
	}
}

func (c *canvas) box(x0, x1 int, st cellStyle) {
	c.hline(x0+1, x1-1, 0, '─', st)
	c.hline(x0+1, x1-1, 2, '─', st)
	c.set(x0, 0, '┌', st)
	c.set(x1, 0, '┐', st)
	c.set(x0, 1, '│', st)
	c.set(x1, 1, '│', st)
	c.set(x0, 2, '└', st)
	c.set(x1, 2, '┘', st)
}

// lines renders each row, styling runs of equal cells together.
func (c *canvas) lines(styles map[cellStyle]lipgloss.Style) []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var b strings.Builder
		row := c.cells[y*c.w : (y+1)*c.w]
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end].st == row[start].st {
				end++
			}
			var run strings.Builder
			for _, cl := range row[start:end] {
				run.WriteRune(cl.r)
			}
			if st, ok := styles[row[start].st]; ok {
				b.WriteString(st.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			start = end
		}
		out[y] = b.String()
	}
	return out
}

// scene maps bench pixels onto terminal columns.
type scene struct {
	params friction.Params
	cellPx float64
}

func (s scene) col(px float64) int {
	return int(math.Round(px / s.cellPx))
}

func (s scene) width() int {
	return s.col(s.params.Layout.BlockRest+blockWidthPx) + 2
}

// render draws the meter, connector, block and surface strip. needle is the
// animated needle offset inside the meter, in pixels.
func (s scene) render(b *bench, needle float64, weights int) []string {
	c := newCanvas(s.width(), sceneRows)
	l := s.params.Layout

	mx0 := s.col(b.meterX)
	mx1 := s.col(b.meterX+l.MeterWidth) - 1
	c.box(mx0, mx1, styleMeter)
	for n := 0.0; n <= s.params.MaxPull; n += 10 {
		c.set(s.col(b.meterX+s.params.NeedleOffset(n)), 0, '┬', styleMeter)
	}
	c.hline(s.col(b.meterX+l.ReadingPad), s.col(b.meterX+l.ReadingPad+l.ReadingSpan), 1, '·', styleMeter)
	c.set(s.col(b.meterX+needle), 1, '┃', styleNeedle)
	c.set(mx1, 1, '├', styleMeter)

	if b.connector.Width > 0 {
		c.hline(s.col(b.connector.FromX), s.col(b.connector.FromX+b.connector.Width)-1, 1, '─', styleConnector)
	}

	bx0 := s.col(b.blockX)
	bx1 := s.col(b.blockX+blockWidthPx) - 1
	c.box(bx0, bx1, styleBlock)
	c.set(bx0, 1, '┤', styleBlock)
	for i := 0; i < weights && bx0+2+i < bx1; i++ {
		c.set(bx0+2+i, 1, '▪', styleWeight)
	}

	pattern, ok := surfacePatterns[b.surface]
	if !ok {
		pattern = '─'
	}
	c.hline(0, c.w-1, 3, pattern, styleSurface)

	return c.lines(map[cellStyle]lipgloss.Style{
		styleMeter:     meterStyle,
		styleNeedle:    needleStyle,
		styleConnector: connectorStyle,
		styleBlock:     blockStyle,
		styleWeight:    weightStyle,
		styleSurface:   surfaceStyle(b.surface),
	})
}

// hitMeter reports whether the pixel position px on scene row y lies on the
// spring meter, with one cell of slack either side.
func (s scene) hitMeter(b *bench, px float64, y int) bool {
	if y < 0 || y > 2 {
		return false
	}
	return px >= b.meterX-s.cellPx && px <= b.meterX+s.params.Layout.MeterWidth+s.cellPx
}
