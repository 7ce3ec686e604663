// Package command defines the simulator's text command protocol: the set
// of valid commands and the parser that turns raw input lines into typed
// requests.
package command

import "github.com/wricardo/rover-sim/game/geo"

// Command identifies one of the simulator's text commands.
type Command string

const (
	File   Command = "FILE"
	Place  Command = "PLACE"
	Move   Command = "MOVE"
	Left   Command = "LEFT"
	Right  Command = "RIGHT"
	Report Command = "REPORT"
	Help   Command = "HELP"
	Exit   Command = "EXIT"
)

// descriptions maps each command to its help text.
var descriptions = map[Command]string{
	File:   "Read commands from the provided filepath. Accepts one arg in the form of a filepath.",
	Place:  "Place the rover at the specified x,y coordinates with given direction. Accepts one arg in the form x,y,Direction e.g. 1,3,NORTH",
	Move:   "Move the rover one place forwards.",
	Left:   "Rotate the rover 90 degrees to the left.",
	Right:  "Rotate the rover 90 degrees to the right.",
	Report: "Display the current location of the rover.",
	Help:   "Display a help message.",
	Exit:   "Exit the simulator.",
}

// All returns every command in the fixed order used by help output.
func All() []Command {
	return []Command{File, Place, Move, Left, Right, Report, Help, Exit}
}

// Description returns the human-readable help text for the command.
func (c Command) Description() string {
	return descriptions[c]
}

// lookup matches an uppercased token against the command set.
func lookup(token string) (Command, bool) {
	c := Command(token)
	if _, ok := descriptions[c]; ok {
		return c, true
	}
	return "", false
}

// PlaceArgs carries the parsed arguments of a PLACE command.
type PlaceArgs struct {
	Position  geo.Vec2
	Direction geo.Vec2
}

// Request is a fully parsed command line. FilePath is set only for FILE
// requests and Place only for PLACE requests.
type Request struct {
	Command  Command
	FilePath string
	Place    *PlaceArgs
}
