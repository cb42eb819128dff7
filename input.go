package main

import "math"

// Input validation: untrusted client transforms are checked against map
// bounds and a speed ceiling. Out-of-bounds positions are dropped,
// overspeed velocities are clamped — never rejected with an error.

const (
	MapBound     = 1000.0 // |x| and |z| must stay within this
	MaxMoveSpeed = 0.5    // horizontal units per update
)

// ValidatePosition reports whether a claimed position is inside the map.
// Non-finite coordinates fail.
func ValidatePosition(pos Vec3) bool {
	if !isFinite(pos.X) || !isFinite(pos.Z) {
		return false
	}
	if pos.X > MapBound || pos.X < -MapBound {
		return false
	}
	if pos.Z > MapBound || pos.Z < -MapBound {
		return false
	}
	return true
}

// ClampVelocity rescales vel so its horizontal speed does not exceed
// maxSpeed, preserving direction. Speeds at or under the limit pass
// through unchanged. Non-finite velocities collapse to zero.
func ClampVelocity(vel Vec2, maxSpeed float64) Vec2 {
	if !isFinite(vel.X) || !isFinite(vel.Z) {
		return Vec2{}
	}
	speed := math.Sqrt(vel.X*vel.X + vel.Z*vel.Z)
	if speed <= maxSpeed {
		return vel
	}
	scale := maxSpeed / speed
	return Vec2{X: vel.X * scale, Z: vel.Z * scale}
}
