package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-drift/ink/pkg/script"
)

func init() {
	RegisterCommand(&Command{
		Name:  "timeline",
		Short: "Print the animation schedule of a gesture",
		Long: `Replay a pointer script and print every opacity segment scheduled
for every ripple, with its end delay and removal time.

Without --script a single tap at the surface center is traced.

Usage:
  ink timeline
  ink timeline --script press-drag.yaml`,
		Usage: "ink timeline [--script FILE] [--fps N]",
		Run:   runTimeline,
	})
}

func runTimeline(args []string) error {
	var scriptPath string
	fps := script.DefaultFPS
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--script":
			v, err := flagValue(args, &i, "--script")
			if err != nil {
				return err
			}
			scriptPath = v
		case "--fps":
			v, err := flagValue(args, &i, "--fps")
			if err != nil {
				return err
			}
			if _, err := fmt.Sscanf(v, "%d", &fps); err != nil || fps <= 0 {
				return fmt.Errorf("--fps must be a positive integer (got %q)", v)
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
	sc, err := sess.loadScript(scriptPath)
	if err != nil {
		return err
	}
	return writeTimeline(os.Stdout, sess, sc, fps)
}

func writeTimeline(w io.Writer, sess *session, sc *script.Script, fps int) error {
	player := &script.Player{Responder: sess.responder, FPS: fps}
	trace, err := player.Play(sc)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, sess.describe())
	for _, rt := range trace.Ripples {
		fmt.Fprintf(w, "ripple %d at (%.2f, %.2f) started %v\n", rt.ID, rt.Anchor.X, rt.Anchor.Y, rt.Started)
		for _, seg := range rt.Opacity {
			fmt.Fprintf(w, "  opacity %8v  +%-6v %.2f -> %.2f\n",
				seg.Begin.Sub(script.Epoch), seg.Duration, seg.From, seg.To)
		}
		fmt.Fprintf(w, "  end delay %v, %s\n", rt.EndDelay, removal(rt))
	}
	fmt.Fprintf(w, "%d frames over %v\n", trace.Frames, sc.End())
	return nil
}

func removal(rt *script.RippleTrace) string {
	if !rt.Removed {
		return "still visible"
	}
	return "removed at " + rt.RemovedAt.Round(time.Millisecond).String()
}
