// Package script replays recorded pointer input against a ripple surface.
//
// A script is a YAML document listing pointer steps at offsets from the
// start of playback:
//
//	steps:
//	  - {at: 0ms, action: down, x: 50, y: 50}
//	  - {at: 120ms, action: move, x: 70, y: 50}
//	  - {at: 300ms, action: up, x: 70, y: 50}
//	duration: 800ms
//
// duration is how long playback continues after the last step.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	inkerrors "github.com/go-drift/ink/pkg/errors"
	"github.com/go-drift/ink/pkg/gestures"
	"github.com/go-drift/ink/pkg/graphics"
)

// Action is a pointer step kind.
type Action string

const (
	ActionDown   Action = "down"
	ActionMove   Action = "move"
	ActionUp     Action = "up"
	ActionCancel Action = "cancel"
)

// Phase returns the pointer phase for the action.
func (a Action) Phase() (gestures.PointerPhase, bool) {
	switch a {
	case ActionDown:
		return gestures.PointerPhaseDown, true
	case ActionMove:
		return gestures.PointerPhaseMove, true
	case ActionUp:
		return gestures.PointerPhaseUp, true
	case ActionCancel:
		return gestures.PointerPhaseCancel, true
	default:
		return 0, false
	}
}

// Step is one pointer event. Pointer defaults to 1.
type Step struct {
	At      time.Duration `yaml:"at"`
	Action  Action        `yaml:"action"`
	X       float64       `yaml:"x"`
	Y       float64       `yaml:"y"`
	Pointer int64         `yaml:"pointer,omitempty"`
}

// Position returns the step location in window coordinates.
func (s Step) Position() graphics.Offset {
	return graphics.Offset{X: s.X, Y: s.Y}
}

// Event converts the step to a pointer event.
func (s Step) Event() gestures.PointerEvent {
	phase, _ := s.Action.Phase()
	id := s.Pointer
	if id == 0 {
		id = 1
	}
	return gestures.PointerEvent{PointerID: id, Position: s.Position(), Phase: phase}
}

// Script is a sequence of pointer steps in time order.
type Script struct {
	Steps    []Step        `yaml:"steps"`
	Duration time.Duration `yaml:"duration,omitempty"`
}

// DefaultDuration is the playback tail used when a script sets none. It is
// long enough for a ripple released during its start span to fade out.
const DefaultDuration = time.Second

// Tap returns a script that presses and releases at p.
func Tap(p graphics.Offset) *Script {
	return &Script{
		Steps: []Step{
			{At: 0, Action: ActionDown, X: p.X, Y: p.Y},
			{At: 0, Action: ActionUp, X: p.X, Y: p.Y},
		},
	}
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML script data.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, scriptError(fmt.Errorf("failed to parse script: %w", err))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks step order, actions and coordinates.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return scriptError(fmt.Errorf("script has no steps"))
	}
	if s.Duration < 0 {
		return scriptError(fmt.Errorf("duration must not be negative (got %v)", s.Duration))
	}
	var prev time.Duration
	for i, step := range s.Steps {
		if _, ok := step.Action.Phase(); !ok {
			return scriptError(fmt.Errorf("step %d: unknown action %q", i, step.Action))
		}
		if step.At < 0 {
			return scriptError(fmt.Errorf("step %d: negative time %v", i, step.At))
		}
		if step.At < prev {
			return scriptError(fmt.Errorf("step %d: time %v is before the previous step (%v)", i, step.At, prev))
		}
		if math.IsNaN(step.X) || math.IsNaN(step.Y) || math.IsInf(step.X, 0) || math.IsInf(step.Y, 0) {
			return scriptError(fmt.Errorf("step %d: coordinates must be finite", i))
		}
		prev = step.At
	}
	return nil
}

// End returns the playback length: the last step time plus Duration, or
// plus DefaultDuration when Duration is unset.
func (s *Script) End() time.Duration {
	tail := s.Duration
	if tail == 0 {
		tail = DefaultDuration
	}
	if len(s.Steps) == 0 {
		return tail
	}
	return s.Steps[len(s.Steps)-1].At + tail
}

func scriptError(err error) *inkerrors.InkError {
	return &inkerrors.InkError{Op: "script.Parse", Kind: inkerrors.KindConfig, Err: err}
}
