package animation

import (
	"math"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTrack_BaseBeforeAnySegment(t *testing.T) {
	tr := NewTrack(0.0, LerpFloat64)
	tr.Append(Segment[float64]{Begin: at(100), Duration: 100 * time.Millisecond, From: 0, To: 1})

	if got := tr.ValueAt(at(50)); got != 0 {
		t.Errorf("ValueAt before begin = %v, want base 0", got)
	}
	if got := tr.ValueAt(at(150)); !approx(got, 0.5) {
		t.Errorf("ValueAt mid segment = %v, want 0.5", got)
	}
	if got := tr.ValueAt(at(500)); got != 1 {
		t.Errorf("ValueAt after end = %v, want fill-forward 1", got)
	}
}

func TestTrack_NewerSegmentWinsOnceBegun(t *testing.T) {
	tr := NewTrack(0.0, LerpFloat64)
	tr.Append(Segment[float64]{Begin: at(0), Duration: 100 * time.Millisecond, From: 0, To: 1})
	tr.Append(Segment[float64]{Begin: at(200), Duration: 100 * time.Millisecond, From: 1, To: 0.5})

	tests := []struct {
		ms   int
		want float64
	}{
		{50, 0.5},
		{150, 1},
		{200, 1},
		{250, 0.75},
		{400, 0.5},
	}
	for _, tt := range tests {
		if got := tr.ValueAt(at(tt.ms)); !approx(got, tt.want) {
			t.Errorf("ValueAt(%dms) = %v, want %v", tt.ms, got, tt.want)
		}
	}
}

func TestTrack_DelayedSegmentDoesNotShadowEarly(t *testing.T) {
	tr := NewTrack(0.0, LerpFloat64)
	tr.Append(Segment[float64]{Begin: at(0), Duration: 0, From: 1, To: 1})
	tr.Append(Segment[float64]{Begin: at(400), Duration: 100 * time.Millisecond, From: 0.3, To: 0})

	if got := tr.ValueAt(at(399)); got != 1 {
		t.Errorf("delayed segment leaked before its begin: %v", got)
	}
	if got := tr.ValueAt(at(400)); !approx(got, 0.3) {
		t.Errorf("ValueAt at delayed begin = %v, want from value 0.3", got)
	}
}

func TestTrack_PruneKeepsFutureValues(t *testing.T) {
	tr := NewTrack(0.0, LerpFloat64)
	tr.Append(Segment[float64]{Begin: at(0), Duration: 100 * time.Millisecond, From: 0, To: 1})
	tr.Append(Segment[float64]{Begin: at(100), Duration: 100 * time.Millisecond, From: 1, To: 0})
	tr.Append(Segment[float64]{Begin: at(500), Duration: 100 * time.Millisecond, From: 0, To: 1})

	before := tr.ValueAt(at(300))
	tr.Prune(at(300))
	if n := len(tr.Segments()); n != 2 {
		t.Fatalf("expected 2 segments after prune, got %d", n)
	}
	if got := tr.ValueAt(at(300)); got != before {
		t.Errorf("prune changed presented value: %v -> %v", before, got)
	}
	if got := tr.ValueAt(at(550)); !approx(got, 0.5) {
		t.Errorf("future segment broken by prune: %v", got)
	}
}

func TestTrack_Settled(t *testing.T) {
	tr := NewTrack(0.0, LerpFloat64)
	if !tr.Settled(at(0)) {
		t.Error("empty track should be settled")
	}
	tr.Append(Segment[float64]{Begin: at(100), Duration: 50 * time.Millisecond, From: 0, To: 1})
	if tr.Settled(at(149)) {
		t.Error("track settled before segment end")
	}
	if !tr.Settled(at(150)) {
		t.Error("track not settled at segment end")
	}
}

func TestSegment_ProgressUsesCurve(t *testing.T) {
	seg := Segment[float64]{Begin: at(0), Duration: 100 * time.Millisecond, Curve: func(p float64) float64 { return p * p }}
	if got := seg.Progress(at(50)); !approx(got, 0.25) {
		t.Errorf("Progress = %v, want 0.25", got)
	}
	if got := seg.Progress(at(-10)); got != 0 {
		t.Errorf("Progress before begin = %v, want 0", got)
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(0.083); got != 83*time.Millisecond {
		t.Errorf("Seconds(0.083) = %v", got)
	}
	if got := Seconds(0.417); got != 417*time.Millisecond {
		t.Errorf("Seconds(0.417) = %v", got)
	}
}
