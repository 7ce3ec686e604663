package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/rover-sim/game/geo"
)

func newTestController() (*Controller, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewController(NewBoard(5, 5), out), out
}

func execAll(t *testing.T, c *Controller, lines ...string) {
	t.Helper()
	for _, line := range lines {
		c.ExecLine(line)
	}
}

func TestControllerLazyRoverCreation(t *testing.T) {
	c, _ := newTestController()

	if c.Rover() != nil {
		t.Fatal("controller must start without a rover")
	}

	c.ExecLine("PLACE 1,1,NORTH")
	if c.Rover() == nil {
		t.Fatal("first valid PLACE must create the rover")
	}
}

func TestControllerPlaceOutOfBoundsBeforeCreation(t *testing.T) {
	c, out := newTestController()

	c.ExecLine("PLACE 7,3,NORTH")
	if c.Rover() != nil {
		t.Error("out-of-bounds PLACE must not create a rover")
	}
	if !strings.Contains(out.String(), "out of bounds") {
		t.Errorf("expected out-of-bounds diagnostic, got %q", out.String())
	}

	out.Reset()
	c.ExecLine("REPORT")
	if !strings.Contains(out.String(), "place a rover first") {
		t.Errorf("REPORT without a rover should print a precondition diagnostic, got %q", out.String())
	}
}

func TestControllerCommandsRequireRover(t *testing.T) {
	for _, line := range []string{"MOVE", "LEFT", "RIGHT", "REPORT"} {
		c, out := newTestController()
		c.ExecLine(line)
		if !strings.Contains(out.String(), "place a rover first") {
			t.Errorf("%s without a rover should print a diagnostic, got %q", line, out.String())
		}
	}
}

func TestControllerScenarioMoveAndTurn(t *testing.T) {
	c, out := newTestController()

	execAll(t, c, "PLACE 3,3,NORTH", "MOVE", "LEFT", "MOVE", "MOVE")
	out.Reset()
	c.ExecLine("REPORT")

	if got, want := strings.TrimSpace(out.String()), "Rover Position: 1.00, 4.00, Direction: WEST"; got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

func TestControllerScenarioBoundaryRejection(t *testing.T) {
	c, out := newTestController()

	execAll(t, c, "PLACE 3,3,NORTH", "MOVE", "LEFT", "MOVE", "MOVE")
	// Two of the following moves are rejected at the board edge
	execAll(t, c, "MOVE", "MOVE", "RIGHT", "MOVE", "MOVE")
	out.Reset()
	c.ExecLine("REPORT")

	if got, want := strings.TrimSpace(out.String()), "Rover Position: 0.00, 5.00, Direction: NORTH"; got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

func TestControllerExit(t *testing.T) {
	c, _ := newTestController()

	if sig := c.ExecLine("EXIT"); sig != Stop {
		t.Errorf("EXIT returned %v, want Stop", sig)
	}
	if sig := c.ExecLine("MOVE"); sig != Continue {
		t.Errorf("MOVE returned %v, want Continue", sig)
	}
}

func TestControllerHelpListsAllCommands(t *testing.T) {
	c, out := newTestController()
	c.ExecLine("HELP")

	for _, name := range []string{"FILE", "PLACE", "MOVE", "LEFT", "RIGHT", "REPORT", "HELP", "EXIT"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("help output missing command %s:\n%s", name, out.String())
		}
	}
}

func TestControllerMalformedLinesAreNonFatal(t *testing.T) {
	c, out := newTestController()

	execAll(t, c, "PLACE 1,1,NORTH", "bogus", "PLACE 1,1", "MOVE")
	out.Reset()
	c.ExecLine("REPORT")

	if got, want := strings.TrimSpace(out.String()), "Rover Position: 1.00, 2.00, Direction: NORTH"; got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
}

func TestControllerFileExecution(t *testing.T) {
	c, _ := newTestController()

	path := filepath.Join(t.TempDir(), "commands.txt")
	content := strings.Join([]string{
		"PLACE 1,1,NORTH",
		"this line is garbage",
		"PLACE 2,2,EAST",
		"PLACE 9,9,SOUTH",
		"PLACE 3,3,SOUTH",
		"PLACE 4,4",
		"PLACE 4,4,WEST",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write command file: %v", err)
	}

	if sig := c.ExecLine("FILE " + path); sig != Continue {
		t.Errorf("FILE returned %v, want Continue", sig)
	}

	// Four placements are valid; the last one wins
	rover := c.Rover()
	if rover == nil {
		t.Fatal("file execution should have placed a rover")
	}
	if rover.Position() != (geo.Vec2{X: 4, Y: 4}) {
		t.Errorf("position = %v, want (4, 4)", rover.Position())
	}
	if rover.Direction() != (geo.Vec2{X: -1, Y: 0}) {
		t.Errorf("direction = %v, want west", rover.Direction())
	}
}

func TestControllerFileMissing(t *testing.T) {
	c, out := newTestController()

	if sig := c.ExecLine("FILE /no/such/commands.txt"); sig != Continue {
		t.Errorf("missing file returned %v, want Continue", sig)
	}
	if !strings.Contains(out.String(), "Cannot open file") {
		t.Errorf("expected open diagnostic, got %q", out.String())
	}
}

func TestControllerNestedFiles(t *testing.T) {
	c, _ := newTestController()
	dir := t.TempDir()

	inner := filepath.Join(dir, "inner.txt")
	if err := os.WriteFile(inner, []byte("MOVE\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	outer := filepath.Join(dir, "outer.txt")
	outerContent := "PLACE 2,2,NORTH\nFILE " + inner + "\nMOVE\n"
	if err := os.WriteFile(outer, []byte(outerContent), 0o644); err != nil {
		t.Fatal(err)
	}

	c.ExecLine("FILE " + outer)

	if got := c.Rover().Position(); got.L1Dist(geo.Vec2{X: 2, Y: 4}) > 1e-9 {
		t.Errorf("position = %v, want (2, 4) after nested file moves", got)
	}
}

func TestControllerFileExitEndsOnlyThatFile(t *testing.T) {
	c, _ := newTestController()

	path := filepath.Join(t.TempDir(), "commands.txt")
	content := "PLACE 1,1,NORTH\nEXIT\nMOVE\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if sig := c.ExecLine("FILE " + path); sig != Continue {
		t.Errorf("FILE containing EXIT returned %v, want Continue", sig)
	}
	// The MOVE after EXIT must not have run
	if got := c.Rover().Position(); got != (geo.Vec2{X: 1, Y: 1}) {
		t.Errorf("position = %v, want (1, 1)", got)
	}
}

func TestControllerRun(t *testing.T) {
	c, out := newTestController()

	input := strings.NewReader("PLACE 0,0,EAST\nMOVE\nREPORT\nEXIT\nMOVE\n")
	if err := c.Run(input); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Rover Position: 1.00, 0.00, Direction: EAST") {
		t.Errorf("unexpected session output:\n%s", out.String())
	}
}

func TestControllerSnapshot(t *testing.T) {
	c, _ := newTestController()

	snap := c.Snapshot()
	if snap.Placed {
		t.Error("snapshot of fresh controller should not be placed")
	}

	c.ExecLine("PLACE 2,3,SOUTH")
	snap = c.Snapshot()
	if !snap.Placed {
		t.Fatal("snapshot should be placed after PLACE")
	}
	if snap.Position != (geo.Vec2{X: 2, Y: 3}) {
		t.Errorf("snapshot position = %v, want (2, 3)", snap.Position)
	}
	if snap.Heading != "SOUTH" {
		t.Errorf("snapshot heading = %q, want SOUTH", snap.Heading)
	}
}

func TestControllerRestoreRover(t *testing.T) {
	c, _ := newTestController()

	if err := c.RestoreRover(geo.Vec2{X: 1, Y: 2}, geo.East.Vector()); err != nil {
		t.Fatalf("RestoreRover: %v", err)
	}
	if c.Rover().Position() != (geo.Vec2{X: 1, Y: 2}) {
		t.Errorf("restored position = %v, want (1, 2)", c.Rover().Position())
	}

	if err := c.RestoreRover(geo.Vec2{X: 9, Y: 9}, geo.East.Vector()); err == nil {
		t.Error("restoring an out-of-bounds rover should fail")
	}
}
