package main

import (
	"math"
	"testing"
)

func TestValidatePosition(t *testing.T) {
	cases := []struct {
		name string
		pos  Vec3
		want bool
	}{
		{"origin", Vec3{}, true},
		{"inside", Vec3{X: 500, Y: 3, Z: -750}, true},
		{"on x bound", Vec3{X: 1000}, true},
		{"on negative z bound", Vec3{Z: -1000}, true},
		{"past x bound", Vec3{X: 1000.01}, false},
		{"past negative x bound", Vec3{X: -1001}, false},
		{"past z bound", Vec3{Z: 1001}, false},
		{"nan x", Vec3{X: math.NaN()}, false},
		{"inf z", Vec3{Z: math.Inf(1)}, false},
		{"negative inf x", Vec3{X: math.Inf(-1)}, false},
	}
	for _, tc := range cases {
		if got := ValidatePosition(tc.pos); got != tc.want {
			t.Errorf("%s: ValidatePosition(%+v) = %v, want %v", tc.name, tc.pos, got, tc.want)
		}
	}
}

func TestClampVelocityOverspeed(t *testing.T) {
	vel := ClampVelocity(Vec2{X: 3, Z: 4}, 0.5)

	speed := math.Sqrt(vel.X*vel.X + vel.Z*vel.Z)
	if math.Abs(speed-0.5) > 1e-9 {
		t.Errorf("clamped speed = %f, want 0.5", speed)
	}
	// Direction ratio preserved: 3:4
	if math.Abs(vel.X/vel.Z-0.75) > 1e-9 {
		t.Errorf("direction ratio = %f, want 0.75", vel.X/vel.Z)
	}
}

func TestClampVelocityPassThrough(t *testing.T) {
	in := Vec2{X: 0.3, Z: 0.4} // speed exactly 0.5
	if got := ClampVelocity(in, 0.5); got != in {
		t.Errorf("velocity at the limit should pass through unchanged, got %+v", got)
	}

	slow := Vec2{X: 0.1, Z: -0.2}
	if got := ClampVelocity(slow, 0.5); got != slow {
		t.Errorf("slow velocity should pass through unchanged, got %+v", got)
	}
}

func TestClampVelocityNonFinite(t *testing.T) {
	if got := ClampVelocity(Vec2{X: math.NaN(), Z: 1}, 0.5); got != (Vec2{}) {
		t.Errorf("non-finite velocity should collapse to zero, got %+v", got)
	}
	if got := ClampVelocity(Vec2{X: 0, Z: math.Inf(1)}, 0.5); got != (Vec2{}) {
		t.Errorf("infinite velocity should collapse to zero, got %+v", got)
	}
}
