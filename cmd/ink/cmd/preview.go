package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/ink/cmd/ink/internal/preview"
	"github.com/go-drift/ink/pkg/graphics"
)

func init() {
	RegisterCommand(&Command{
		Name:  "preview",
		Short: "Try the ripple interactively in the terminal",
		Long: `Show the configured surface in the terminal. Press, drag and release
the left mouse button to drive the ripple.

Keys:
  s          toggle bounded / unbounded
  c          cancel every ripple
  q, Esc     quit

Flags:
  --background HEX   Surface color (default: #FFFFFF)

Usage:
  ink preview
  ink --config dark.yaml preview --background #202020`,
		Usage: "ink preview [--background HEX]",
		Run:   runPreview,
	})
}

func runPreview(args []string) error {
	background := graphics.ColorWhite
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--background":
			v, err := flagValue(args, &i, "--background")
			if err != nil {
				return err
			}
			if background, err = graphics.ParseHexColor(v); err != nil {
				return fmt.Errorf("--background: %w", err)
			}
		default:
			return fmt.Errorf("unknown flag %q", args[i])
		}
	}

	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.surface.Dispose()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := preview.New(screen, sess.responder)
	p.SetBackground(background)
	if err := p.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
