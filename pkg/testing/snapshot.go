package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-drift/ink/pkg/ripple"
)

// UpdateSnapshotsEnv names the environment variable that switches
// MatchesFile into update mode.
const UpdateSnapshotsEnv = "INK_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the presented ripple state at a series of instants.
type Snapshot struct {
	Size   [2]float64      `json:"size"`
	Style  string          `json:"style"`
	Frames []SnapshotFrame `json:"frames"`
}

// SnapshotFrame is the surface state at one offset from the capture time.
type SnapshotFrame struct {
	At      string        `json:"at"`
	Ripples []RippleState `json:"ripples,omitempty"`
}

// RippleState is the serialized form of a ripple.Frame.
type RippleState struct {
	ID      uint64     `json:"id"`
	Phase   string     `json:"phase"`
	Center  [2]float64 `json:"center"`
	Radius  float64    `json:"radius"`
	Opacity float64    `json:"opacity"`
	Color   string     `json:"color"`
}

// CaptureSnapshot evaluates every ripple on the surface at the current clock
// time plus each offset. The clock is not advanced, so phases reflect the
// last pump.
func (h *Harness) CaptureSnapshot(offsets ...time.Duration) *Snapshot {
	if len(offsets) == 0 {
		offsets = []time.Duration{0}
	}
	s := h.surface
	size := s.Size()
	snap := &Snapshot{
		Size:  [2]float64{round2(size.Width), round2(size.Height)},
		Style: s.Style().String(),
	}
	now := h.clock.Now()
	for _, off := range offsets {
		snap.Frames = append(snap.Frames, SnapshotFrame{
			At:      off.String(),
			Ripples: captureFrames(s.FramesAt(now.Add(off))),
		})
	}
	return snap
}

func captureFrames(frames []ripple.Frame) []RippleState {
	if len(frames) == 0 {
		return nil
	}
	out := make([]RippleState, 0, len(frames))
	for _, f := range frames {
		out = append(out, RippleState{
			ID:      uint64(f.ID),
			Phase:   f.Phase.String(),
			Center:  [2]float64{round2(f.Center.X), round2(f.Center.Y)},
			Radius:  round2(f.Radius),
			Opacity: round2(f.Opacity),
			Color:   f.Color.Hex(),
		})
	}
	return out
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When INK_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a unified diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := max(len(expectedLines), len(actualLines))
	for i := range maxLen {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}
	return buf.String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
