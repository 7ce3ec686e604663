package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wricardo/rover-sim/game/geo"
)

// Parse turns a raw input line into a typed Request. Parsing never fails
// hard: a malformed line yields a nil Request plus a human-readable
// diagnostic for the caller to print. A blank line yields a nil Request
// and an empty diagnostic (silently ignored).
//
// Lines have the shape `<COMMAND>` or `<COMMAND> <ARGS>`. Command and
// direction tokens are case-insensitive. A second token after a command
// that takes no arguments is ignored. The FILE path is captured verbatim;
// whether it names a readable file is checked at dispatch time.
func Parse(line string) (*Request, string) {
	cleaned := strings.TrimSpace(line)
	if cleaned == "" {
		return nil, ""
	}

	pieces := strings.Split(cleaned, " ")
	if len(pieces) > 2 {
		return nil, "Input format should be `<COMMAND>` or `<COMMAND> <ARGS>`"
	}

	cmd, ok := lookup(strings.ToUpper(pieces[0]))
	if !ok {
		return nil, fmt.Sprintf("Cannot interpret input '%s' as a command. Command must be one of %v.",
			pieces[0], All())
	}

	switch cmd {
	case File:
		if len(pieces) < 2 {
			return nil, "FILE requires a filepath argument."
		}
		return &Request{Command: cmd, FilePath: pieces[1]}, ""

	case Place:
		if len(pieces) < 2 {
			return nil, "PLACE requires placement args in the form x,y,direction"
		}
		args, diag := parsePlaceArgs(pieces[1])
		if diag != "" {
			return nil, diag
		}
		return &Request{Command: cmd, Place: args}, ""
	}

	return &Request{Command: cmd}, ""
}

// parsePlaceArgs splits the PLACE argument token into exactly three
// comma-separated fields: x, y, and a cardinal direction name.
func parsePlaceArgs(token string) (*PlaceArgs, string) {
	fields := strings.Split(token, ",")
	if len(fields) != 3 {
		return nil, fmt.Sprintf("Unable to interpret '%s' as valid placement args. Expected form x,y,direction", token)
	}

	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, fmt.Sprintf("Unable to interpret '%s' as a number.", fields[0])
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, fmt.Sprintf("Unable to interpret '%s' as a number.", fields[1])
	}

	dir, ok := geo.ParseDirection(fields[2])
	if !ok {
		return nil, fmt.Sprintf("Unable to interpret '%s' as a direction. Direction must be one of %v.",
			fields[2], geo.Directions())
	}

	return &PlaceArgs{
		Position:  geo.Vec2{X: x, Y: y},
		Direction: dir.Vector(),
	}, ""
}
