package tui

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/arena"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/surface"
)

// cellAspect is the height of a terminal cell in units of its width.
const cellAspect = 2.0

// hudRows is the number of screen rows above the arena.
const hudRows = 1

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// arenaViewport fits the arena below the HUD of a width x height screen.
// Window units are cell widths.
func arenaViewport(width, height int) surface.Viewport {
	rows := height - hudRows
	if rows < 1 {
		rows = 1
	}
	return surface.Fit(float64(width), float64(rows)*cellAspect)
}

// pointerToWindow converts a mouse cell to viewport window units, aiming at
// the middle of the cell.
func pointerToWindow(x, y int) (float64, float64) {
	return float64(x) + 0.5, (float64(y-hudRows) + 0.5) * cellAspect
}

// drawRect rasterizes an arena rectangle below the HUD. Every rect covers at
// least one cell.
func drawRect(s *core.Screen, vp surface.Viewport, left, bottom, right, top float64, fill rune, c core.Color) {
	x0, y0 := vp.ToWindow(left, top)
	x1, y1 := vp.ToWindow(right, bottom)

	col0, col1 := cellSpan(x0, x1)
	row0, row1 := cellSpan(y0/cellAspect, y1/cellAspect)
	row0 = max(row0, 0)
	if row1 < row0 {
		return
	}
	s.DrawRect(core.NewRect(col0, row0+hudRows, col1-col0+1, row1-row0+1), fill, c)
}

// arenaCells is the part of a width x height screen below the HUD.
func arenaCells(width, height int) core.Rect {
	return core.NewRect(0, hudRows, width, height-hudRows)
}

func cellSpan(lo, hi float64) (int, int) {
	a := int(math.Floor(lo))
	b := int(math.Ceil(hi)) - 1
	if b < a {
		b = a
	}
	return a, b
}

// Frame is what DrawView needs besides the session itself.
type Frame struct {
	View      pong.View
	HighScore int
	Hint      string
}

// DrawView paints one frame: HUD, borders, paddles, ball and the current
// message. It reports whether any text had to be clipped.
func DrawView(s *core.Screen, vp surface.Viewport, f Frame) (clipped bool) {
	s.Clear()
	v := f.View

	for _, b := range v.Borders {
		drawRect(s, vp, b.Left(), b.Bottom(), b.Right(), b.Top(), '█', core.ColorGray)
	}
	for _, p := range v.Paddles {
		drawRect(s, vp, p.Left(), p.Bottom(), p.Right(), p.Top(), '█', p.Color)
	}
	if v.BallLive() {
		b := v.Ball
		drawRect(s, vp, b.X-b.Radius, b.Y-b.Radius, b.X+b.Radius, b.Y+b.Radius, '●', b.Color)
	}

	hud := hudText(v, f.HighScore)
	if n := utf8.RuneCountInString(f.Hint); n > 0 && utf8.RuneCountInString(hud)+n+2 <= s.Width() {
		s.DrawText(s.Width()-n, 0, f.Hint, core.ColorGray)
	}
	clipped = drawLine(s, 0, 0, hud, core.ColorBrightWhite)

	if text := v.Message.Text(); text != "" {
		_, midY := vp.ToWindow(0, arena.Height/2)
		row := int(midY/cellAspect) + hudRows
		clipped = drawCentered(s, vp, row, text, core.ColorBrightWhite) || clipped
	}
	return clipped
}

func hudText(v pong.View, high int) string {
	if v.SinglePlayer {
		return fmt.Sprintf("SCORE %s  HI %05d  LIVES %s", v.ScoreText(), high, hearts(v.Lives[0]))
	}
	return fmt.Sprintf("P1 %s  P2 %s", hearts(v.Lives[0]), hearts(v.Lives[1]))
}

func hearts(n int) string {
	if n <= 0 {
		return "-"
	}
	return strings.Repeat("♥", n)
}

func drawLine(s *core.Screen, x, y int, text string, c core.Color) bool {
	s.DrawText(x, y, text, c)
	return x+utf8.RuneCountInString(text) > s.Width()
}

// drawCentered centers text over the arena, or over the screen when the
// arena is narrower than the text.
func drawCentered(s *core.Screen, vp surface.Viewport, y int, text string, c core.Color) bool {
	n := utf8.RuneCountInString(text)
	left, _ := vp.ToWindow(0, 0)
	right, _ := vp.ToWindow(arena.Width, 0)
	x := int(left+right)/2 - n/2
	if n > int(right-left) {
		x = (s.Width() - n) / 2
	}
	return drawLine(s, core.Clamp(x, 0, max(s.Width()-n, 0)), y, text, c)
}
