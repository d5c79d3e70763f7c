package rendering

import (
	"fmt"

	"github.com/go-drift/ink/pkg/graphics"
)

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []displayOp
	size graphics.Size
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() graphics.Size {
	return d.size
}

// Ops returns a one-line description of each recorded operation.
func (d *DisplayList) Ops() []string {
	out := make([]string, len(d.ops))
	for i, op := range d.ops {
		out[i] = op.String()
	}
	return out
}

// PictureRecorder records drawing commands into a display list.
type PictureRecorder struct {
	ops       []displayOp
	recording bool
	size      graphics.Size
}

// BeginRecording starts a new recording session.
func (r *PictureRecorder) BeginRecording(size graphics.Size) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r, size: size}
}

// EndRecording finishes the recording and returns a display list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]displayOp, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{
		ops:  ops,
		size: r.size,
	}
}

func (r *PictureRecorder) append(op displayOp) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

type displayOp interface {
	execute(canvas Canvas)
	String() string
}

type recordingCanvas struct {
	recorder *PictureRecorder
	size     graphics.Size
}

func (c *recordingCanvas) Save() {
	c.recorder.append(opSave{})
}

func (c *recordingCanvas) Restore() {
	c.recorder.append(opRestore{})
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.recorder.append(opTranslate{dx: dx, dy: dy})
}

func (c *recordingCanvas) ClipRect(rect graphics.Rect) {
	c.recorder.append(opClipRect{rect: rect})
}

func (c *recordingCanvas) Clear(color graphics.Color) {
	c.recorder.append(opClear{color: color})
}

func (c *recordingCanvas) DrawPath(path *graphics.Path, paint Paint) {
	c.recorder.append(opPath{path: clonePath(path), paint: paint})
}

func (c *recordingCanvas) Size() graphics.Size {
	return c.size
}

type opSave struct{}

func (opSave) execute(canvas Canvas) { canvas.Save() }
func (opSave) String() string        { return "save" }

type opRestore struct{}

func (opRestore) execute(canvas Canvas) { canvas.Restore() }
func (opRestore) String() string        { return "restore" }

type opTranslate struct {
	dx, dy float64
}

func (op opTranslate) execute(canvas Canvas) { canvas.Translate(op.dx, op.dy) }
func (op opTranslate) String() string        { return fmt.Sprintf("translate %.2f,%.2f", op.dx, op.dy) }

type opClipRect struct {
	rect graphics.Rect
}

func (op opClipRect) execute(canvas Canvas) { canvas.ClipRect(op.rect) }
func (op opClipRect) String() string {
	return fmt.Sprintf("clip %.2f,%.2f %.2fx%.2f", op.rect.Left, op.rect.Top, op.rect.Width(), op.rect.Height())
}

type opClear struct {
	color graphics.Color
}

func (op opClear) execute(canvas Canvas) { canvas.Clear(op.color) }
func (op opClear) String() string        { return "clear " + op.color.Hex() }

type opPath struct {
	path  *graphics.Path
	paint Paint
}

func (op opPath) execute(canvas Canvas) { canvas.DrawPath(op.path, op.paint) }
func (op opPath) String() string {
	b := op.path.Bounds()
	return fmt.Sprintf("path %s %s bounds %.2f,%.2f %.2fx%.2f",
		op.paint.Color.Hex(), op.paint.BlendMode, b.Left, b.Top, b.Width(), b.Height())
}

func clonePath(path *graphics.Path) *graphics.Path {
	if path == nil {
		return graphics.NewPath()
	}
	out := graphics.NewPath()
	out.Commands = append(out.Commands, path.Commands...)
	return out
}
