package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pokerdice/internal/core"
	"github.com/vovakirdan/pokerdice/internal/dice"
	"github.com/vovakirdan/pokerdice/internal/engine"
	"github.com/vovakirdan/pokerdice/internal/session"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// styleColors tints each die by its style.
var styleColors = map[dice.Style]core.Color{
	dice.StyleCracked: core.ColorGray,
	dice.StyleMetal:   core.ColorCyan,
	dice.StyleIvory:   core.ColorWhite,
	dice.StyleWood:    core.ColorOrange,
	dice.StylePlate:   core.ColorYellow,
}

var phaseColors = map[dice.Phase]core.Color{
	dice.PhaseDetectSurface:  core.ColorMagenta,
	dice.PhasePointToSurface: core.ColorYellow,
	dice.PhaseSwipeToPlay:    core.ColorGreen,
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

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

// tableArea is the projection of the table disc onto the screen, seen from above.
type tableArea struct {
	center         core.Vec3
	radius         float64
	midX, midY     int
	scaleX, scaleZ float64
}

const (
	hudTop    = 2 // Title and status rows
	hudBottom = 4 // Dice, score, hand and event rows
)

func newTableArea(cfg engine.Config, w, h int) tableArea {
	rows := max(h-hudTop-hudBottom, 3)
	span := cfg.TableRadius * 1.15

	// Terminal cells are roughly twice as tall as they are wide.
	scaleZ := float64(rows) / 2 / span
	scaleX := scaleZ * 2
	if scaleX*span > float64(w)/2 {
		scaleX = float64(w) / 2 / span
		scaleZ = scaleX / 2
	}

	return tableArea{
		center: cfg.TableCenter,
		radius: cfg.TableRadius,
		midX:   w / 2,
		midY:   hudTop + rows/2,
		scaleX: scaleX,
		scaleZ: scaleZ,
	}
}

// cell maps a world position to screen coordinates. The camera side of the
// table (+Z) is drawn at the bottom.
func (a tableArea) cell(p core.Vec3) (int, int) {
	d := p.Sub(a.center)
	return a.midX + int(math.Round(d.X*a.scaleX)), a.midY + int(math.Round(d.Z*a.scaleZ))
}

// world maps a screen cell back to a point on the table plane.
func (a tableArea) world(x, y int) core.Vec3 {
	return a.center.Add(core.V3(float64(x-a.midX)/a.scaleX, 0, float64(y-a.midY)/a.scaleZ))
}

// DrawTable renders the session onto the screen: the HUD, the table disc
// once it is detected, the focus reticle, and every die the engine holds.
func DrawTable(scr *core.Screen, sess *session.Session, eng *engine.Scripted, lastEvent string) {
	scr.Clear()
	ctrl := sess.Controller()
	w, h := scr.Width(), scr.Height()

	scr.DrawTextCentered(0, "A R   P O K E R   D I C E", core.ColorCyan)
	scr.DrawTextCentered(1, sess.Status(), phaseColors[ctrl.Phase()])

	area := newTableArea(eng.Config(), w, h)
	if eng.SurfaceTracked() {
		drawDisc(scr, area)
	} else {
		scr.DrawTextCentered(area.midY, "scanning for a flat surface...", core.ColorGray)
	}

	if focus, ok := ctrl.Focus(); ok && ctrl.Phase() != dice.PhaseDetectSurface {
		x, y := area.cell(focus)
		scr.SetColor(x, y, '+', phaseColors[ctrl.Phase()])
	}

	for _, b := range eng.Bodies() {
		x, y := area.cell(b.Position())
		color := styleColors[b.Die.Style]
		if !b.Settled {
			scr.SetColor(x, y, '*', color)
			continue
		}
		symbol := dice.FaceValue(b.Face).Symbol()
		scr.DrawTextColor(x, y, "["+symbol+"]", color)
	}

	drawHUD(scr, sess, lastEvent, h)
}

func drawDisc(scr *core.Screen, a tableArea) {
	for y := hudTop; y < scr.Height()-hudBottom; y++ {
		for x := 0; x < scr.Width(); x++ {
			d := a.world(x, y).Sub(a.center).Horizontal()
			switch {
			case d <= a.radius*0.98:
				scr.SetColor(x, y, '.', core.ColorGreen)
			case d <= a.radius*1.08:
				scr.SetColor(x, y, '#', core.ColorOrange)
			}
		}
	}
}

func drawHUD(scr *core.Screen, sess *session.Session, lastEvent string, h int) {
	ctrl := sess.Controller()
	style := ctrl.Style()

	row := h - hudBottom
	line := fmt.Sprintf(" Dice %d/%d   Style: ", ctrl.Count(), ctrl.MaxDice())
	scr.DrawText(0, row, line)
	scr.DrawTextColor(len(line), row, style.String(), styleColors[style])

	scr.DrawText(0, row+1, " Score: "+dice.FormatValues(ctrl.Score()))

	if hand, ok := sess.LastHand(); ok {
		scr.DrawTextColor(0, row+2, fmt.Sprintf(" Hand:  %s (%d pts)", hand.Category, hand.Points), core.ColorYellow)
	} else {
		scr.DrawTextColor(0, row+2, " Hand:  "+dice.Evaluate(ctrl.Score()).Category.String(), core.ColorGray)
	}

	if lastEvent != "" {
		scr.DrawTextColor(0, row+3, " "+lastEvent, core.ColorGray)
	}
}

// describeEvent turns a controller event into a short log line.
func describeEvent(e dice.Event) string {
	switch ev := e.(type) {
	case dice.PhaseChangedEvent:
		return fmt.Sprintf("phase %s -> %s", ev.Old, ev.New)
	case dice.DiceCountChangedEvent:
		return fmt.Sprintf("%d of %d dice on the table", ev.Count, ev.Max)
	case dice.ScoreChangedEvent:
		return "score " + dice.FormatValues(ev.Values)
	case dice.StyleChangedEvent:
		return "next die: " + ev.Style.String()
	}
	return ""
}
