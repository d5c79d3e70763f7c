// Package testing provides a deterministic harness for ripple surfaces.
//
// # Quick Start
//
// Create a harness, simulate pointers, advance time and assert:
//
//	func TestPress(t *testing.T) {
//	    h := inktest.NewHarnessWithT(t)
//	    h.SendPointerDown(graphics.Offset{X: 50, Y: 50}, 1)
//
//	    h.Advance(200 * time.Millisecond)
//	    r := h.Surface().ActiveRipple()
//	    if r.OpacityAt(h.Clock().Now()) != 1 {
//	        t.Error("expected the ripple to be fully faded in")
//	    }
//	}
//
// # Snapshot Testing
//
// Capture the presented state of every ripple at chosen instants and compare
// it with a golden file:
//
//	snap := h.CaptureSnapshot(0, 100*time.Millisecond, 500*time.Millisecond)
//	snap.MatchesFile(t, "testdata/press.snapshot.json")
//
// Update snapshots with:
//
//	INK_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Animation Testing
//
// The harness clock starts at Epoch and only moves when told to:
//
//	h.Clock().Advance(100 * time.Millisecond)
//	h.Pump()
//
// or, to run until every ripple has been detached:
//
//	h.PumpAndSettle(2 * time.Second)
package testing
