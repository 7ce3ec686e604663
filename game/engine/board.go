package engine

import "github.com/wricardo/rover-sim/game/geo"

// Default board dimensions used when no configuration overrides them.
const (
	DefaultBoardWidth  = 5.0
	DefaultBoardHeight = 5.0
)

// Board defines the rectangular simulation space. The valid region is the
// closed rectangle [0,width] x [0,height] with the origin at the
// south-west corner. A Board is immutable after construction.
type Board struct {
	width  float64
	height float64
}

// NewBoard creates a board with the given bounds. Negative dimensions are
// treated as zero.
func NewBoard(width, height float64) *Board {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Board{width: width, height: height}
}

// Width returns the board's extent along the x axis.
func (b *Board) Width() float64 { return b.width }

// Height returns the board's extent along the y axis.
func (b *Board) Height() float64 { return b.height }

// Contains reports whether the point lies within the board's bounds.
// Boundary points are valid. This is the single place a collision or
// obstacle check would hook in.
func (b *Board) Contains(point geo.Vec2) bool {
	return point.X >= 0 && point.X <= b.width &&
		point.Y >= 0 && point.Y <= b.height
}
