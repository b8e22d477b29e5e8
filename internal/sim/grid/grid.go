// Package grid is integer tile-space math for the 2D factory map.
//
// Positions are tile coordinates with x growing right and y growing down
// (screen convention). Rotation is restricted to quarter turns so that every
// transform stays exact on the lattice.
package grid

import "math"

// Point is an integer tile coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Neg() Point        { return Point{X: -p.X, Y: -p.Y} }

// RotateCW rotates p by 90 degrees clockwise about the origin.
// With y growing down this is (x,y) -> (-y,x). Axis swap plus sign flip,
// so four applications return the input exactly.
func RotateCW(p Point) Point { return Point{X: -p.Y, Y: p.X} }

// PointF is a fractional tile coordinate, used only for centroid math.
type PointF struct {
	X float64
	Y float64
}

func (p PointF) Add(q PointF) PointF { return PointF{X: p.X + q.X, Y: p.Y + q.Y} }

func (p PointF) Div(d float64) PointF { return PointF{X: p.X / d, Y: p.Y / d} }

// Floor rounds both components toward negative infinity.
func (p PointF) Floor() Point {
	return Point{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// NormalizeDegrees maps a quarter-turn angle into [0,360).
func NormalizeDegrees(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}
