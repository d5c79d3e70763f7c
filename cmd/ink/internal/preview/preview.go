// Package preview shows a ripple surface in the terminal. The mouse acts as
// the touch pointer: press, drag and release drive the responder.
package preview

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/go-drift/ink/pkg/animation"
	"github.com/go-drift/ink/pkg/gestures"
	"github.com/go-drift/ink/pkg/graphics"
	"github.com/go-drift/ink/pkg/ripple"
)

// FrameInterval is the redraw period of Run.
const FrameInterval = 16 * time.Millisecond

// mousePointer is the pointer ID used for mouse input.
const mousePointer = 1

// Preview renders one surface onto a tcell screen. The last screen row is
// a status line; the rest shows the surface scaled to fit.
type Preview struct {
	screen     tcell.Screen
	responder  *ripple.Responder
	background colorful.Color
	pressed    bool
	last       graphics.Offset
}

// New creates a preview. The screen must already be initialized.
func New(screen tcell.Screen, responder *ripple.Responder) *Preview {
	screen.EnableMouse()
	return &Preview{
		screen:     screen,
		responder:  responder,
		background: colorful.Color{R: 1, G: 1, B: 1},
	}
}

// SetBackground sets the surface color behind the ripples.
func (p *Preview) SetBackground(c graphics.Color) {
	p.background = toColorful(c)
}

// Surface returns the previewed surface.
func (p *Preview) Surface() *ripple.Surface {
	return p.responder.Surface()
}

// Run processes input and redraws until ctx is cancelled or the user quits.
func (p *Preview) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go p.pollEvents(ctx, events)

	p.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !p.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			animation.StepTickers()
			p.Draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or ctx is
// done. events is closed on return.
func (p *Preview) pollEvents(ctx context.Context, events chan<- tcell.Event) {
	defer close(events)
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (p *Preview) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'c':
				p.Surface().CancelAllRipples(true, nil)
			case 's':
				s := p.Surface()
				if s.Style() == ripple.StyleBounded {
					s.SetStyle(ripple.StyleUnbounded)
				} else {
					s.SetStyle(ripple.StyleBounded)
				}
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		p.handleMouse(p.cellCenter(x, y), ev.Buttons()&tcell.Button1 != 0)
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

func (p *Preview) handleMouse(pos graphics.Offset, down bool) {
	event := gestures.PointerEvent{PointerID: mousePointer, Position: pos}
	switch {
	case down && !p.pressed:
		event.Phase = gestures.PointerPhaseDown
	case down && p.pressed:
		if pos == p.last {
			return
		}
		event.Phase = gestures.PointerPhaseMove
		event.Delta = pos.Sub(p.last)
	case !down && p.pressed:
		event.Phase = gestures.PointerPhaseUp
		event.Delta = pos.Sub(p.last)
	default:
		return
	}
	p.pressed = down
	p.last = pos
	p.responder.HandlePointer(event)
}

// Draw paints the surface and status line at the current animation time.
func (p *Preview) Draw() {
	cols, rows := p.surfaceCells()
	s := p.Surface()
	frames := s.Frames()
	bounds := s.Bounds()

	for y := range rows {
		for x := range cols {
			pt := p.cellCenter(x, y)
			c := p.background
			for _, f := range frames {
				c = blendFrame(c, f, pt, bounds, s.Style())
			}
			r, g, b := c.Clamped().RGB255()
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
			p.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	p.drawStatus(rows, cols, len(frames), s.Style())
	p.screen.Show()
}

func (p *Preview) drawStatus(row, width, count int, style ripple.Style) {
	text := fmt.Sprintf(" ripples: %d  style: %s  [s]tyle [c]ancel [q]uit", count, style)
	st := tcell.StyleDefault.Reverse(true)
	for x := range width {
		ch := ' '
		if x < len(text) {
			ch = rune(text[x])
		}
		p.screen.SetContent(x, row, ch, nil, st)
	}
}

// blendFrame composites one ripple over c at pt. Bounded ripples are masked
// to the surface bounds.
func blendFrame(c colorful.Color, f ripple.Frame, pt graphics.Offset, bounds graphics.Rect, style ripple.Style) colorful.Color {
	if f.Opacity <= 0 {
		return c
	}
	if style == ripple.StyleBounded && !bounds.Contains(pt) {
		return c
	}
	if math.Hypot(pt.X-f.Center.X, pt.Y-f.Center.Y) > f.Radius {
		return c
	}
	fill := f.FillColor()
	return c.BlendRgb(toColorful(fill), fill.Alpha())
}

// surfaceCells returns the grid the surface occupies: every column and all
// rows but the status line.
func (p *Preview) surfaceCells() (cols, rows int) {
	w, h := p.screen.Size()
	return w, max(h-1, 1)
}

// cellCenter maps a screen cell to surface coordinates.
func (p *Preview) cellCenter(x, y int) graphics.Offset {
	cols, rows := p.surfaceCells()
	size := p.Surface().Size()
	return graphics.Offset{
		X: (float64(x) + 0.5) * size.Width / float64(max(cols, 1)),
		Y: (float64(y) + 0.5) * size.Height / float64(rows),
	}
}

func toColorful(c graphics.Color) colorful.Color {
	r, g, b, _ := c.RGBAF()
	return colorful.Color{R: r, G: g, B: b}
}
