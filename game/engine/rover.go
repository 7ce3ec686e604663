package engine

import (
	"errors"
	"fmt"

	"github.com/wricardo/rover-sim/game/geo"
)

// ErrOutOfBounds is returned when a position falls outside the board.
var ErrOutOfBounds = errors.New("position is out of bounds")

// Rover is the simulated agent. It owns a position and a unit-length
// heading, and holds a reference to its board so every mutation can be
// validated. The position is always within the board's bounds.
type Rover struct {
	board     *Board
	position  geo.Vec2
	direction geo.Vec2
}

// NewRover creates a rover on the given board. Construction fails with
// ErrOutOfBounds if the start position is outside the board, and with
// geo.ErrZeroVector if the direction has zero magnitude. The stored
// direction is normalized to unit length.
func NewRover(board *Board, position, direction geo.Vec2) (*Rover, error) {
	if !board.Contains(position) {
		return nil, fmt.Errorf("rover at %s: %w", position, ErrOutOfBounds)
	}
	unit, err := direction.Normalize()
	if err != nil {
		return nil, err
	}
	return &Rover{board: board, position: position, direction: unit}, nil
}

// Position returns the rover's current position.
func (r *Rover) Position() geo.Vec2 { return r.position }

// Direction returns the rover's current unit-length heading.
func (r *Rover) Direction() geo.Vec2 { return r.direction }

// Place moves the rover to the given position and heading. An
// out-of-bounds position or zero-magnitude direction leaves the rover
// unchanged and returns an error; callers treat this as a diagnostic, not
// a failure, so batch execution continues past bad placements.
func (r *Rover) Place(position, direction geo.Vec2) error {
	if !r.board.Contains(position) {
		return fmt.Errorf("point %s: %w", position, ErrOutOfBounds)
	}
	unit, err := direction.Normalize()
	if err != nil {
		return err
	}
	r.position = position
	r.direction = unit
	return nil
}

// Move advances the rover by distance units along its heading. A move
// whose target lies outside the board is rejected whole: the rover does
// not move and ErrOutOfBounds is returned.
func (r *Rover) Move(distance float64) error {
	target := r.position.Add(r.direction.Scale(distance))
	if !r.board.Contains(target) {
		return fmt.Errorf("moving %.2f units to %s: %w", distance, target, ErrOutOfBounds)
	}
	r.position = target
	return nil
}

// RotateLeft turns the rover counter-clockwise by angleDeg degrees. The
// rotation is applied to the stored heading, so floating-point error
// accumulates over many rotations; report output snaps to a cardinal only
// within a small tolerance.
func (r *Rover) RotateLeft(angleDeg float64) {
	r.direction = geo.Rotate(r.direction, angleDeg)
}

// RotateRight turns the rover clockwise by angleDeg degrees.
func (r *Rover) RotateRight(angleDeg float64) {
	r.direction = geo.Rotate(r.direction, -angleDeg)
}

// Report formats the rover's position and heading for display. The
// heading is shown as a cardinal name when it is within the snap
// tolerance of one, otherwise as the raw vector.
func (r *Rover) Report() string {
	heading := r.direction.String()
	if dir, ok := geo.NearestCardinal(r.direction, geo.DefaultSnapTolerance); ok {
		heading = string(dir)
	}
	return fmt.Sprintf("Rover Position: %.2f, %.2f, Direction: %s", r.position.X, r.position.Y, heading)
}
