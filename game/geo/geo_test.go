package geo

import (
	"math"
	"testing"
)

func TestDirectionVectors(t *testing.T) {
	expected := map[Direction]Vec2{
		North: {X: 0, Y: 1},
		East:  {X: 1, Y: 0},
		South: {X: 0, Y: -1},
		West:  {X: -1, Y: 0},
	}

	for dir, want := range expected {
		got := dir.Vector()
		if got != want {
			t.Errorf("%s.Vector() = %v, want %v", dir, got, want)
		}
		if n := got.Norm(); n != 1 {
			t.Errorf("%s vector magnitude = %v, want 1", dir, n)
		}
	}

	// All four vectors must be pairwise distinct
	seen := map[Vec2]Direction{}
	for _, d := range Directions() {
		v := d.Vector()
		if prev, dup := seen[v]; dup {
			t.Errorf("directions %s and %s map to the same vector %v", prev, d, v)
		}
		seen[v] = d
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
		ok    bool
	}{
		{"NORTH", North, true},
		{"north", North, true},
		{"East", East, true},
		{" south ", South, true},
		{"WEST", West, true},
		{"", "", false},
		{"NORTHWEST", "", false},
		{"up", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDirection(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseDirection(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRotateQuarterTurns(t *testing.T) {
	v := Vec2{X: 0, Y: 1}

	rotated := v
	for i := 0; i < 4; i++ {
		rotated = Rotate(rotated, 90)
	}

	if rotated.L1Dist(v) > 1e-9 {
		t.Errorf("four 90-degree rotations drifted to %v from %v", rotated, v)
	}
}

func TestRotateDirectionality(t *testing.T) {
	// Positive angle is counter-clockwise: north rotated left is west
	left := Rotate(North.Vector(), 90)
	if left.L1Dist(West.Vector()) > 1e-9 {
		t.Errorf("Rotate(north, 90) = %v, want %v", left, West.Vector())
	}

	// Negative angle is clockwise: north rotated right is east
	right := Rotate(North.Vector(), -90)
	if right.L1Dist(East.Vector()) > 1e-9 {
		t.Errorf("Rotate(north, -90) = %v, want %v", right, East.Vector())
	}
}

func TestRotatePreservesMagnitude(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	rotated := Rotate(v, 37.5)
	if math.Abs(rotated.Norm()-v.Norm()) > 1e-9 {
		t.Errorf("rotation changed magnitude from %v to %v", v.Norm(), rotated.Norm())
	}
}

func TestNormalize(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	unit, err := v.Normalize()
	if err != nil {
		t.Fatalf("Normalize(%v) returned error: %v", v, err)
	}
	if math.Abs(unit.Norm()-1) > 1e-12 {
		t.Errorf("normalized magnitude = %v, want 1", unit.Norm())
	}

	if _, err := (Vec2{}).Normalize(); err != ErrZeroVector {
		t.Errorf("Normalize of zero vector returned %v, want ErrZeroVector", err)
	}
}

func TestNearestCardinal(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		tol  float64
		want Direction
		ok   bool
	}{
		{"exact north", Vec2{X: 0, Y: 1}, DefaultSnapTolerance, North, true},
		{"near east", Vec2{X: 1, Y: 1e-8}, DefaultSnapTolerance, East, true},
		{"diagonal outside tolerance", Vec2{X: 0.707, Y: 0.707}, DefaultSnapTolerance, "", false},
		{"diagonal with loose tolerance", Vec2{X: 0.9, Y: 0.1}, 0.5, East, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NearestCardinal(tt.v, tt.tol)
			if ok != tt.ok || got != tt.want {
				t.Errorf("NearestCardinal(%v, %v) = (%q, %v), want (%q, %v)",
					tt.v, tt.tol, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestVec2String(t *testing.T) {
	v := Vec2{X: 1.234, Y: 5.678}
	if got, want := v.String(), "(1.23, 5.68)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
