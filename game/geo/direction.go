package geo

import "strings"

// Direction represents a cardinal compass direction.
type Direction string

const (
	North Direction = "NORTH"
	East  Direction = "EAST"
	South Direction = "SOUTH"
	West  Direction = "WEST"
)

// Directions returns all cardinal directions in fixed order.
func Directions() []Direction {
	return []Direction{North, East, South, West}
}

// Vector returns the exact axis-aligned unit vector for the direction.
func (d Direction) Vector() Vec2 {
	switch d {
	case North:
		return Vec2{X: 0, Y: 1}
	case East:
		return Vec2{X: 1, Y: 0}
	case South:
		return Vec2{X: 0, Y: -1}
	case West:
		return Vec2{X: -1, Y: 0}
	}
	return Vec2{}
}

// ParseDirection matches s against the cardinal directions,
// case-insensitively. The second return value reports whether s named a
// valid direction.
func ParseDirection(s string) (Direction, bool) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case North, East, South, West:
		return d, true
	}
	return "", false
}
