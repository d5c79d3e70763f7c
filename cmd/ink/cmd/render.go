package cmd

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/go-drift/ink/pkg/errors"
	"github.com/go-drift/ink/pkg/graphics"
	"github.com/go-drift/ink/pkg/rendering"
	"github.com/go-drift/ink/pkg/script"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a gesture to PNG frames",
		Long: `Replay a pointer script and rasterize every frame to PNG.

Flags:
  --script FILE      Pointer script (default: a tap at the surface center)
  --out DIR          Write frame_NNNN.png files to DIR
  --fps N            Frames per second (default: 60)
  --sheet FILE       Write a labelled contact sheet of sampled frames
  --padding PX       Margin around the surface, for unbounded ripples (default: 0)
  --background HEX   Surface color (default: #FFFFFF)

At least one of --out or --sheet is required.

Usage:
  ink render --out frames
  ink render --script drag.yaml --sheet drag.png --padding 20`,
		Usage: "ink render [--script FILE] [--out DIR] [--sheet FILE] [--fps N] [--padding PX] [--background HEX]",
		Run:   runRender,
	})
}

// sheetFrames is the maximum number of frames on a contact sheet.
const sheetFrames = 12

type renderOptions struct {
	scriptPath string
	outDir     string
	sheetPath  string
	fps        int
	padding    float64
	background graphics.Color
}

func runRender(args []string) error {
	opts := renderOptions{fps: script.DefaultFPS, background: graphics.ColorWhite}
	for i := 0; i < len(args); i++ {
		name := args[i]
		if name != "--script" && name != "--out" && name != "--sheet" && name != "--fps" &&
			name != "--padding" && name != "--background" {
			return fmt.Errorf("unknown flag %q", name)
		}
		v, err := flagValue(args, &i, name)
		if err != nil {
			return err
		}
		switch name {
		case "--script":
			opts.scriptPath = v
		case "--out":
			opts.outDir = v
		case "--sheet":
			opts.sheetPath = v
		case "--fps":
			if _, err := fmt.Sscanf(v, "%d", &opts.fps); err != nil || opts.fps <= 0 {
				return fmt.Errorf("--fps must be a positive integer (got %q)", v)
			}
		case "--padding":
			if _, err := fmt.Sscanf(v, "%g", &opts.padding); err != nil || opts.padding < 0 {
				return fmt.Errorf("--padding must be a non-negative number (got %q)", v)
			}
		case "--background":
			c, err := graphics.ParseHexColor(v)
			if err != nil {
				return fmt.Errorf("--background: %w", err)
			}
			opts.background = c
		}
	}
	if opts.outDir == "" && opts.sheetPath == "" {
		return fmt.Errorf("nothing to write: pass --out DIR and/or --sheet FILE")
	}

	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.surface.Dispose()
	sc, err := sess.loadScript(opts.scriptPath)
	if err != nil {
		return err
	}

	n, err := renderGesture(sess, sc, opts)
	if err != nil {
		return err
	}
	if opts.outDir != "" {
		log.Printf("wrote %d frames to %s", n, opts.outDir)
	}
	if opts.sheetPath != "" {
		log.Printf("wrote contact sheet %s", opts.sheetPath)
	}
	return nil
}

type sheetCell struct {
	img image.Image
	at  time.Duration
}

// renderGesture plays sc and writes the requested outputs. It returns the
// number of frames rendered.
func renderGesture(sess *session, sc *script.Script, opts renderOptions) (int, error) {
	const op = "cmd.render"
	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return 0, &errors.InkError{Op: op, Kind: errors.KindRender, Err: err}
		}
	}

	interval := time.Second / time.Duration(opts.fps)
	total := int(sc.End()/interval) + 1
	sampled := sampleIndices(total, sheetFrames)

	var (
		cells    []sheetCell
		firstErr error
	)
	player := &script.Player{
		Responder: sess.responder,
		FPS:       opts.fps,
		OnFrame: func(f script.Frame) {
			if firstErr != nil {
				return
			}
			img := rendering.RenderFrames(sess.settings.Size, sess.surface.Style(), f.Ripples, rendering.RenderOptions{
				Background: opts.background,
				Padding:    opts.padding,
			})
			if opts.outDir != "" {
				path := filepath.Join(opts.outDir, fmt.Sprintf("frame_%04d.png", f.Index))
				if err := gg.SavePNG(path, img); err != nil {
					firstErr = err
					return
				}
			}
			if opts.sheetPath != "" && sampled[f.Index] {
				cells = append(cells, sheetCell{img: img, at: f.At})
			}
		},
	}
	trace, err := player.Play(sc)
	if err != nil {
		return 0, err
	}
	if firstErr != nil {
		return 0, &errors.InkError{Op: op, Kind: errors.KindRender, Err: firstErr}
	}
	if opts.sheetPath != "" {
		if err := writeSheet(opts.sheetPath, cells); err != nil {
			return 0, &errors.InkError{Op: op, Kind: errors.KindRender, Err: err}
		}
	}
	return trace.Frames, nil
}

// sampleIndices picks up to n frame indices spread evenly over total,
// always including the first and last.
func sampleIndices(total, n int) map[int]bool {
	picked := make(map[int]bool, n)
	if total <= 0 {
		return picked
	}
	if total <= n {
		for i := range total {
			picked[i] = true
		}
		return picked
	}
	for k := range n {
		picked[k*(total-1)/(n-1)] = true
	}
	return picked
}

// writeSheet lays cells out in rows of four, each labelled with its time.
func writeSheet(path string, cells []sheetCell) error {
	if len(cells) == 0 {
		return fmt.Errorf("no frames to place on the contact sheet")
	}
	const (
		columns = 4
		gap     = 8
		label   = 16
	)
	cw := cells[0].img.Bounds().Dx()
	ch := cells[0].img.Bounds().Dy()
	rows := (len(cells) + columns - 1) / columns
	cols := min(len(cells), columns)

	dc := gg.NewContext(gap+cols*(cw+gap), gap+rows*(ch+label+gap))
	dc.SetColor(color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF})
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    11,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	for i, cell := range cells {
		x := gap + (i%columns)*(cw+gap)
		y := gap + (i/columns)*(ch+label+gap)
		dc.DrawImage(cell.img, x, y)
		dc.SetColor(color.Black)
		dc.DrawRectangle(float64(x)-0.5, float64(y)-0.5, float64(cw)+1, float64(ch)+1)
		dc.SetLineWidth(1)
		dc.Stroke()
		dc.DrawStringAnchored(cell.at.Round(time.Millisecond).String(), float64(x)+float64(cw)/2, float64(y+ch)+label/2, 0.5, 0.5)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return dc.SavePNG(path)
}
