package main

import "time"

// Ammo and reload handling. Each player is a small state machine:
// Ready -> Reloading -> Ready. The Reloading -> Ready transition is a
// one-shot delayed callback that is never cancelled; it re-looks-up the
// player at fire time and treats "gone" as a normal no-op.

// CanFire reports whether a fire request is allowed right now: not
// reloading, rounds left, alive, and past the per-player rate limit.
func (p *Player) CanFire(now time.Time) bool {
	if p.Reloading || p.Ammo <= 0 || !p.Alive() {
		return false
	}
	return now.Sub(p.LastFire) >= FireInterval
}

// CanReload reports whether an explicit reload request is allowed
func (p *Player) CanReload() bool {
	return !p.Reloading && p.Reserve > 0 && p.Ammo < MagazineSize
}

// FinishReload moves rounds from reserve into the magazine and returns
// the player to Ready
func (p *Player) FinishReload() {
	n := MagazineSize - p.Ammo
	if n > p.Reserve {
		n = p.Reserve
	}
	p.Ammo += n
	p.Reserve -= n
	p.Reloading = false
}

// HandleShoot validates and applies a fire request. Invalid or disallowed
// requests have no effect — no error reaches the sender.
func (g *Game) HandleShoot(playerID string, msg ShootMsg) {
	now := time.Now()
	dir, ok := Normalize3(msg.Dir)
	if !ok || !ValidatePosition(msg.Pos) {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	p, found := g.players[playerID]
	if !found || !p.CanFire(now) {
		return
	}
	p.Ammo--
	p.LastFire = now
	p.LastInput = now

	g.projSeq++
	proj := NewProjectile(GenerateID(4), playerID, g.projSeq, msg.Pos, dir, now)
	g.insertProjectileLocked(proj)

	// Empty magazine with rounds in reserve reloads automatically
	if p.Ammo == 0 && p.Reserve > 0 {
		g.beginReloadLocked(p)
	}

	g.broadcastLocked(Envelope{T: MsgPlayerFired, Data: FiredMsg{
		PlayerID:     playerID,
		ProjectileID: proj.ID,
		Pos:          proj.Pos,
		Dir:          proj.Dir,
		Ammo:         p.Ammo,
	}})
}

// HandleReload applies an explicit reload request
func (g *Game) HandleReload(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[playerID]
	if !ok || !p.CanReload() {
		return
	}
	p.LastInput = time.Now()
	g.beginReloadLocked(p)
}

func (g *Game) beginReloadLocked(p *Player) {
	p.Reloading = true
	id := p.ID
	time.AfterFunc(ReloadDuration, func() { g.completeReload(id) })
}

// completeReload is the delayed Reloading -> Ready transition. The player
// may have disconnected, been evicted, or respawned (which clears the
// reloading flag) since the timer was armed — all of those are no-ops.
func (g *Game) completeReload(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[playerID]
	if !ok || !p.Reloading {
		return
	}
	p.FinishReload()
	g.sendToLocked(playerID, Envelope{T: MsgReloadComplete, Data: ReloadCompleteMsg{
		Ammo:    p.Ammo,
		Reserve: p.Reserve,
	}})
}
