// Package geo provides the 2D vector math used by the rover simulator.
// It contains no external dependencies to keep the simulation logic pure
// and testable.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// DefaultSnapTolerance is the L1 distance within which a heading is
// considered equal to a cardinal direction for display purposes.
const DefaultSnapTolerance = 1e-6

// ErrZeroVector is returned when a zero-magnitude vector is normalized.
var ErrZeroVector = errors.New("cannot normalize zero-magnitude vector")

// Vec2 represents a 2D vector, used both for absolute positions and for
// unit-length headings.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum of v and other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Scale returns v multiplied by the scalar s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Norm returns the Euclidean magnitude of v.
func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length. A zero-magnitude vector has
// no defined direction and yields ErrZeroVector.
func (v Vec2) Normalize() (Vec2, error) {
	n := v.Norm()
	if n == 0 {
		return Vec2{}, ErrZeroVector
	}
	return Vec2{X: v.X / n, Y: v.Y / n}, nil
}

// L1Dist returns the Manhattan distance between v and other.
func (v Vec2) L1Dist(other Vec2) float64 {
	return math.Abs(v.X-other.X) + math.Abs(v.Y-other.Y)
}

// String formats the vector as "(x.xx, y.xx)".
func (v Vec2) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// Rotate returns v rotated by angleDeg degrees. Positive angles rotate
// counter-clockwise. Rotation always starts from the given vector, so
// repeated rotations accumulate floating-point drift over many calls;
// four successive 90 degree rotations stay within 1e-9 of the original.
func Rotate(v Vec2, angleDeg float64) Vec2 {
	rad := angleDeg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec2{
		X: cos*v.X - sin*v.Y,
		Y: sin*v.X + cos*v.Y,
	}
}

// NearestCardinal returns the cardinal direction whose unit vector is
// closest to v by L1 distance, if that distance is within tol. The second
// return value reports whether a match was found.
func NearestCardinal(v Vec2, tol float64) (Direction, bool) {
	var best Direction
	bestDist := math.Inf(1)
	for _, d := range Directions() {
		dist := v.L1Dist(d.Vector())
		if dist < bestDist {
			best = d
			bestDist = dist
		}
	}
	if bestDist > tol {
		return "", false
	}
	return best, true
}
