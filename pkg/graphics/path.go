package graphics

import "fmt"

// PathOp represents a path drawing operation type.
type PathOp int

const (
	PathOpMoveTo  PathOp = iota // Start new subpath at point (x, y)
	PathOpLineTo                // Draw line to point (x, y)
	PathOpCubicTo               // Draw cubic curve to (x3, y3) via controls (x1, y1), (x2, y2)
	PathOpClose                 // Close subpath with line to start point
)

// String returns a human-readable representation of the path operation.
func (o PathOp) String() string {
	switch o {
	case PathOpMoveTo:
		return "move_to"
	case PathOpLineTo:
		return "line_to"
	case PathOpCubicTo:
		return "cubic_to"
	case PathOpClose:
		return "close"
	default:
		return fmt.Sprintf("PathOp(%d)", int(o))
	}
}

// PathCommand represents a single path operation with its coordinate arguments.
type PathCommand struct {
	Op   PathOp    // The operation type
	Args []float64 // Coordinates: MoveTo/LineTo=[x,y], CubicTo=[x1,y1,x2,y2,x3,y3]
}

// Path is a vector outline built from move, line and cubic commands.
type Path struct {
	Commands []PathCommand
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{}
}

// circleKappa is the control point distance for approximating a quarter
// circle with one cubic bezier.
const circleKappa = 0.5522847498307936

// NewCirclePath returns a closed path approximating a circle.
func NewCirclePath(center Offset, radius float64) *Path {
	p := NewPath()
	p.AddCircle(center, radius)
	return p
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{
		Op:   PathOpMoveTo,
		Args: []float64{x, y},
	})
}

// LineTo adds a line segment from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{
		Op:   PathOpLineTo,
		Args: []float64{x, y},
	})
}

// CubicTo adds a cubic bezier curve from the current point to (x3, y3)
// with control points (x1, y1) and (x2, y2).
func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.Commands = append(p.Commands, PathCommand{
		Op:   PathOpCubicTo,
		Args: []float64{x1, y1, x2, y2, x3, y3},
	})
}

// Close closes the current subpath by drawing a line to the starting point.
func (p *Path) Close() {
	p.Commands = append(p.Commands, PathCommand{
		Op: PathOpClose,
	})
}

// AddCircle appends a closed circle as four cubic segments, starting at
// the rightmost point and winding clockwise in screen coordinates.
func (p *Path) AddCircle(center Offset, radius float64) {
	k := radius * circleKappa
	cx, cy := center.X, center.Y
	p.MoveTo(cx+radius, cy)
	p.CubicTo(cx+radius, cy+k, cx+k, cy+radius, cx, cy+radius)
	p.CubicTo(cx-k, cy+radius, cx-radius, cy+k, cx-radius, cy)
	p.CubicTo(cx-radius, cy-k, cx-k, cy-radius, cx, cy-radius)
	p.CubicTo(cx+k, cy-radius, cx+radius, cy-k, cx+radius, cy)
	p.Close()
}

// Bounds returns the bounding box of every point and control point in the
// path. An empty path has an empty bounds.
func (p *Path) Bounds() Rect {
	first := true
	var r Rect
	for _, cmd := range p.Commands {
		for i := 0; i+1 < len(cmd.Args); i += 2 {
			x, y := cmd.Args[i], cmd.Args[i+1]
			if first {
				r = Rect{Left: x, Top: y, Right: x, Bottom: y}
				first = false
				continue
			}
			r = r.Union(Rect{Left: x, Top: y, Right: x, Bottom: y})
		}
	}
	return r
}

// IsEmpty returns true if the path has no commands.
func (p *Path) IsEmpty() bool {
	return len(p.Commands) == 0
}

// Clear removes all commands from the path.
func (p *Path) Clear() {
	p.Commands = p.Commands[:0]
}
