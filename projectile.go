package main

import "time"

const (
	ProjectileSpeed    = 50.0 // world units per second
	ProjectileDamage   = 25
	ProjectileLifetime = 3000 * time.Millisecond
	HitRadius          = 0.8
	MaxProjectiles     = 500

	// Motion integrates a constant nominal delta rather than measured
	// elapsed time, so tick jitter never changes travel per tick.
	FixedDelta = 1.0 / 60.0
)

// Projectile is a straight-line shot owned by the world store
type Projectile struct {
	ID        string
	OwnerID   string
	Seq       uint64 // creation order; eviction and scan-order key
	Pos       Vec3
	Dir       Vec3 // normalized
	Damage    int
	CreatedAt time.Time
}

// NewProjectile creates a projectile at the validated muzzle position.
// dir must already be normalized.
func NewProjectile(id, ownerID string, seq uint64, pos, dir Vec3, now time.Time) *Projectile {
	return &Projectile{
		ID:        id,
		OwnerID:   ownerID,
		Seq:       seq,
		Pos:       pos,
		Dir:       dir,
		Damage:    ProjectileDamage,
		CreatedAt: now,
	}
}

// Advance moves the projectile one tick along its direction
func (p *Projectile) Advance() {
	p.Pos.X += p.Dir.X * ProjectileSpeed * FixedDelta
	p.Pos.Y += p.Dir.Y * ProjectileSpeed * FixedDelta
	p.Pos.Z += p.Dir.Z * ProjectileSpeed * FixedDelta
}

// Expired reports whether the projectile has outlived its lifetime.
// The boundary is strict: a projectile at exactly lifetime age is kept.
func (p *Projectile) Expired(now time.Time) bool {
	return now.Sub(p.CreatedAt) > ProjectileLifetime
}

// ToState converts to the protocol projection
func (p *Projectile) ToState() ProjectileState {
	return ProjectileState{
		ID:  p.ID,
		Pos: p.Pos,
		Dir: p.Dir,
	}
}
