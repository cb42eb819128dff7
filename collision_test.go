package main

import (
	"testing"
	"time"
)

func TestCheckHit(t *testing.T) {
	center := Vec3{X: 10, Y: 1, Z: 10}

	if !CheckHit(Vec3{X: 10.5, Y: 1, Z: 10}, center) {
		t.Error("0.5 units away should hit")
	}
	if CheckHit(Vec3{X: 10.8, Y: 1, Z: 10}, center) {
		t.Error("exactly the hit radius is not a hit (strict inequality)")
	}
	if CheckHit(Vec3{X: 11, Y: 1, Z: 10}, center) {
		t.Error("1.0 units away should miss")
	}
	// Distance is 3D: 0.7 horizontal + 0.7 vertical is over the radius
	if CheckHit(Vec3{X: 10.7, Y: 1.7, Z: 10}, center) {
		t.Error("vertical separation must count toward distance")
	}
}

// addProjectileAt drops a projectile directly into the store for collision tests
func addProjectileAt(g *Game, id, ownerID string, pos Vec3) *Projectile {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.projSeq++
	proj := NewProjectile(id, ownerID, g.projSeq, pos, Vec3{X: 1}, time.Now())
	g.insertProjectileLocked(proj)
	return proj
}

func TestCollisionDamagesVictim(t *testing.T) {
	g := newTestGame()
	shooter := g.Join("Shooter", &mockBroadcaster{})
	victim := g.Join("Victim", &mockBroadcaster{})

	g.mu.Lock()
	victim.Pos = Vec3{X: 50, Y: 1, Z: 50}
	g.mu.Unlock()
	addProjectileAt(g, "b1", shooter.ID, Vec3{X: 50.2, Y: 1, Z: 50})

	g.mu.Lock()
	g.checkCollisionsLocked()
	g.mu.Unlock()

	g.mu.RLock()
	defer g.mu.RUnlock()
	if victim.HP != PlayerMaxHealth-ProjectileDamage {
		t.Errorf("expected HP %d, got %d", PlayerMaxHealth-ProjectileDamage, victim.HP)
	}
	if len(g.projectiles) != 0 {
		t.Error("projectile must be consumed by the hit")
	}
}

func TestCollisionSkipsShooter(t *testing.T) {
	g := newTestGame()
	shooter := g.Join("Shooter", &mockBroadcaster{})

	g.mu.Lock()
	shooter.Pos = Vec3{X: 5, Y: 1, Z: 5}
	g.mu.Unlock()
	addProjectileAt(g, "b1", shooter.ID, Vec3{X: 5, Y: 1, Z: 5})

	g.mu.Lock()
	g.checkCollisionsLocked()
	g.mu.Unlock()

	g.mu.RLock()
	defer g.mu.RUnlock()
	if shooter.HP != PlayerMaxHealth {
		t.Error("a projectile never hits its own shooter")
	}
	if len(g.projectiles) != 1 {
		t.Error("projectile should pass through its shooter")
	}
}

func TestCollisionSkipsDeadPlayers(t *testing.T) {
	g := newTestGame()
	shooter := g.Join("Shooter", &mockBroadcaster{})
	victim := g.Join("Victim", &mockBroadcaster{})

	g.mu.Lock()
	victim.Pos = Vec3{X: 50, Y: 1, Z: 50}
	victim.HP = 0
	g.mu.Unlock()
	addProjectileAt(g, "b1", shooter.ID, Vec3{X: 50, Y: 1, Z: 50})

	g.mu.Lock()
	g.checkCollisionsLocked()
	g.mu.Unlock()

	g.mu.RLock()
	defer g.mu.RUnlock()
	if len(g.projectiles) != 1 {
		t.Error("dead players are not collision targets")
	}
}

func TestCollisionAtMostOneHitPerProjectile(t *testing.T) {
	g := newTestGame()
	shooter := g.Join("Shooter", &mockBroadcaster{})
	first := g.Join("First", &mockBroadcaster{})
	second := g.Join("Second", &mockBroadcaster{})

	// Both victims inside the hit radius of the same projectile
	g.mu.Lock()
	first.Pos = Vec3{X: 50, Y: 1, Z: 50}
	second.Pos = Vec3{X: 50.3, Y: 1, Z: 50}
	g.mu.Unlock()
	addProjectileAt(g, "b1", shooter.ID, Vec3{X: 50.1, Y: 1, Z: 50})

	g.mu.Lock()
	g.checkCollisionsLocked()
	g.mu.Unlock()

	g.mu.RLock()
	defer g.mu.RUnlock()
	// Join order decides: the earlier player takes the hit
	if first.HP != PlayerMaxHealth-ProjectileDamage {
		t.Errorf("first joiner should take the hit, HP %d", first.HP)
	}
	if second.HP != PlayerMaxHealth {
		t.Errorf("second player must be untouched, HP %d", second.HP)
	}
}

func TestCollisionDeterministicProjectileOrder(t *testing.T) {
	g := newTestGame()
	shooter := g.Join("Shooter", &mockBroadcaster{})
	victim := g.Join("Victim", &mockBroadcaster{})

	g.mu.Lock()
	victim.Pos = Vec3{X: 50, Y: 1, Z: 50}
	victim.HP = 30 // second hit would kill, but both land this tick
	g.mu.Unlock()
	addProjectileAt(g, "b1", shooter.ID, Vec3{X: 50, Y: 1, Z: 50})
	addProjectileAt(g, "b2", shooter.ID, Vec3{X: 50, Y: 1, Z: 50})

	g.mu.Lock()
	g.checkCollisionsLocked()
	g.mu.Unlock()

	g.mu.RLock()
	defer g.mu.RUnlock()
	// First projectile drops HP to 5; second one kills. Both consumed.
	if victim.HP != 0 {
		t.Errorf("expected victim dead after two hits, HP %d", victim.HP)
	}
	if victim.Deaths != 1 || shooter.Kills != 1 {
		t.Errorf("expected exactly one death/kill, got %d/%d", victim.Deaths, shooter.Kills)
	}
	if len(g.projectiles) != 0 {
		t.Error("both projectiles should be consumed")
	}
}
