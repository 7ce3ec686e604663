package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wricardo/rover-sim/game/command"
	"github.com/wricardo/rover-sim/game/geo"
)

// Movement constants applied by the MOVE, LEFT and RIGHT commands.
const (
	MoveDistance = 1.0
	RotateAngle  = 90.0
)

// Signal tells the caller whether to keep feeding input to the
// controller after a dispatch.
type Signal int

const (
	Continue Signal = iota
	Stop
)

// Controller orchestrates parsed commands into board and rover
// operations. It owns one board and at most one rover, which is created
// lazily on the first PLACE that lands inside the board. Diagnostics and
// command output are written to out.
//
// Command files may reference further command files; execution is a
// plain linear scan, so a self-referential FILE chain recurses without
// bound. That matches the protocol's definition and is not guarded.
type Controller struct {
	board *Board
	rover *Rover
	out   io.Writer
}

// NewController creates a controller for the given board, writing all
// output to out.
func NewController(board *Board, out io.Writer) *Controller {
	return &Controller{board: board, out: out}
}

// Board returns the controller's board.
func (c *Controller) Board() *Board { return c.board }

// Rover returns the controller's rover, or nil if none has been placed.
func (c *Controller) Rover() *Rover { return c.rover }

// ExecLine parses a raw input line, prints any parse diagnostic, and
// dispatches the resulting request. Blank and malformed lines yield
// Continue.
func (c *Controller) ExecLine(line string) Signal {
	req, diag := command.Parse(line)
	if req == nil {
		if diag != "" {
			fmt.Fprintln(c.out, diag)
		}
		return Continue
	}
	return c.Dispatch(req)
}

// Run feeds every line from r through ExecLine until an EXIT command or
// end of input.
func (c *Controller) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if c.ExecLine(scanner.Text()) == Stop {
			return nil
		}
	}
	return scanner.Err()
}

// Dispatch applies a parsed request to the simulation. Every branch
// except EXIT returns Continue; no command failure is fatal.
func (c *Controller) Dispatch(req *command.Request) Signal {
	switch req.Command {
	case command.File:
		c.runFile(req.FilePath)

	case command.Place:
		c.place(req.Place)

	case command.Move:
		if r := c.requireRover(); r != nil {
			if err := r.Move(MoveDistance); err != nil {
				fmt.Fprintf(c.out, "Cannot move %.2f units as would move rover out of bounds!\n", MoveDistance)
			}
		}

	case command.Left:
		if r := c.requireRover(); r != nil {
			r.RotateLeft(RotateAngle)
		}

	case command.Right:
		if r := c.requireRover(); r != nil {
			r.RotateRight(RotateAngle)
		}

	case command.Report:
		if r := c.requireRover(); r != nil {
			fmt.Fprintln(c.out, r.Report())
		}

	case command.Help:
		c.printHelp()

	case command.Exit:
		return Stop
	}

	return Continue
}

// place creates the rover on its first valid placement, and delegates to
// the rover afterwards. Out-of-bounds placements are ignored with a
// diagnostic so batch files keep running past bad lines.
func (c *Controller) place(args *command.PlaceArgs) {
	if c.rover == nil {
		rover, err := NewRover(c.board, args.Position, args.Direction)
		if err != nil {
			if errors.Is(err, ErrOutOfBounds) {
				fmt.Fprintf(c.out, "Unable to create rover at %s as this is out of bounds.\n", args.Position)
			} else {
				fmt.Fprintf(c.out, "Unable to create rover: %v\n", err)
			}
			return
		}
		c.rover = rover
		return
	}

	if err := c.rover.Place(args.Position, args.Direction); err != nil {
		if errors.Is(err, ErrOutOfBounds) {
			fmt.Fprintf(c.out, "Point %s is out of bounds. Place action ignored.\n", args.Position)
		} else {
			fmt.Fprintf(c.out, "Place action ignored: %v\n", err)
		}
	}
}

// runFile executes every line of the referenced command file. A missing
// or unreadable file is a diagnostic, not an error, and the handle is
// always closed even when the file contains malformed lines. An EXIT
// inside a file ends that file's scan without ending the session.
func (c *Controller) runFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(c.out, "Cannot open file '%s': %v\n", path, err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if c.ExecLine(scanner.Text()) == Stop {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(c.out, "Error reading file '%s': %v\n", path, err)
	}
}

// requireRover returns the rover, printing a diagnostic and returning
// nil if none has been placed yet.
func (c *Controller) requireRover() *Rover {
	if c.rover == nil {
		fmt.Fprintln(c.out, "No rover present, place a rover first!")
		return nil
	}
	return c.rover
}

// printHelp lists every command with its description in fixed order.
func (c *Controller) printHelp() {
	fmt.Fprintln(c.out, "List of commands:")
	for _, cmd := range command.All() {
		fmt.Fprintf(c.out, "\t%s\t%s\n", cmd, cmd.Description())
	}
}

// Snapshot captures the controller's externally visible state, used by
// the API, WebSocket feed and session persistence.
type Snapshot struct {
	Placed    bool     `json:"placed"`
	Position  geo.Vec2 `json:"position"`
	Direction geo.Vec2 `json:"direction"`
	Heading   string   `json:"heading,omitempty"`
	Report    string   `json:"report,omitempty"`
}

// Snapshot returns the current state of the simulation.
func (c *Controller) Snapshot() Snapshot {
	if c.rover == nil {
		return Snapshot{}
	}
	snap := Snapshot{
		Placed:    true,
		Position:  c.rover.Position(),
		Direction: c.rover.Direction(),
		Report:    c.rover.Report(),
	}
	if dir, ok := geo.NearestCardinal(c.rover.Direction(), geo.DefaultSnapTolerance); ok {
		snap.Heading = string(dir)
	}
	return snap
}

// RestoreRover recreates the rover from a persisted snapshot. It is used
// when loading a saved session and fails like NewRover on invalid state.
func (c *Controller) RestoreRover(position, direction geo.Vec2) error {
	rover, err := NewRover(c.board, position, direction)
	if err != nil {
		return fmt.Errorf("failed to restore rover: %w", err)
	}
	c.rover = rover
	return nil
}
