package geom

import "math"

// Point is a position in scene units. The origin sits at the frame centre,
// x grows to the right and y grows upwards.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Common unit directions
var (
	Origin = Point{}
	Up     = Point{X: 0, Y: 1}
	Down   = Point{X: 0, Y: -1}
	Left   = Point{X: -1, Y: 0}
	Right  = Point{X: 1, Y: 0}
)

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Dist returns the euclidean distance between p and q
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Lerp interpolates between p (alpha=0) and q (alpha=1)
func (p Point) Lerp(q Point, alpha float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*alpha,
		Y: p.Y + (q.Y-p.Y)*alpha,
	}
}

// Near reports whether p and q are within eps of each other
func (p Point) Near(q Point, eps float64) bool {
	return p.Dist(q) <= eps
}

// Centroid returns the mean of the given points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Origin
	}
	var sum Point
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// Bounds returns the lower-left and upper-right corners enclosing points
func Bounds(points []Point) (Point, Point) {
	if len(points) == 0 {
		return Origin, Origin
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}
