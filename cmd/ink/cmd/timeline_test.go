package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-drift/ink/pkg/config"
	"github.com/go-drift/ink/pkg/script"
)

func testSession(t *testing.T, yaml string) *session {
	t.Helper()
	cfg, err := config.Parse([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	sess, err := sessionFor("demo", cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(sess.surface.Dispose)
	return sess
}

func TestWriteTimeline_Tap(t *testing.T) {
	sess := testSession(t, "")
	sc, err := sess.loadScript("")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeTimeline(&buf, sess, sc, 60); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"demo: surface 100x100 bounded, ink #1F000000",
		"ripple 1 at (50.00, 50.00) started 0s",
		"0.00 -> 1.00",
		"1.00 -> 0.50",
		"1.00 -> 0.00",
		"end delay 417ms, removed at 683ms",
		"61 frames over 1s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("timeline missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTimeline_ConfiguredSurface(t *testing.T) {
	sess := testSession(t, "ink:\n  color: \"#40FF0000\"\n  style: unbounded\nsurface:\n  width: 200\n  height: 40\n")
	sc := script.Tap(sess.surface.Bounds().Center())

	var buf bytes.Buffer
	if err := writeTimeline(&buf, sess, sc, 30); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "demo: surface 200x40 unbounded, ink #40FF0000") {
		t.Errorf("unexpected header:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "ripple 1 at (100.00, 20.00)") {
		t.Errorf("expected tap at the surface center:\n%s", buf.String())
	}
}
