package engine

import (
	"testing"

	"github.com/wricardo/rover-sim/game/geo"
)

func TestBoardContains(t *testing.T) {
	board := NewBoard(5, 5)

	inside := []geo.Vec2{
		{X: 0, Y: 0},
		{X: 5, Y: 5},
		{X: 0, Y: 5},
		{X: 5, Y: 0},
		{X: 2.5, Y: 2.5},
		{X: 5, Y: 2},
	}
	for _, p := range inside {
		if !board.Contains(p) {
			t.Errorf("Contains(%v) = false, want true", p)
		}
	}

	outside := []geo.Vec2{
		{X: -0.01, Y: 0},
		{X: 0, Y: -0.01},
		{X: 5.01, Y: 0},
		{X: 0, Y: 5.01},
		{X: 7, Y: 3},
		{X: -1, Y: -1},
	}
	for _, p := range outside {
		if board.Contains(p) {
			t.Errorf("Contains(%v) = true, want false", p)
		}
	}
}

func TestBoardZeroSize(t *testing.T) {
	board := NewBoard(0, 0)
	if !board.Contains(geo.Vec2{}) {
		t.Error("origin should be inside a zero-size board")
	}
	if board.Contains(geo.Vec2{X: 0.1, Y: 0}) {
		t.Error("(0.1, 0) should be outside a zero-size board")
	}
}

func TestBoardNegativeSizeTreatedAsZero(t *testing.T) {
	board := NewBoard(-3, -4)
	if board.Width() != 0 || board.Height() != 0 {
		t.Errorf("negative dimensions should collapse to zero, got %v x %v", board.Width(), board.Height())
	}
}
