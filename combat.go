package main

import (
	"time"

	"go.uber.org/zap"
)

// resolveHitLocked applies projectile damage to the victim and publishes
// the outcome. A lethal hit awards counters, announces the kill and arms
// the delayed respawn.
func (g *Game) resolveHitLocked(proj *Projectile, victim *Player) {
	died := victim.TakeDamage(proj.Damage)

	g.broadcastLocked(Envelope{T: MsgPlayerHit, Data: HitMsg{
		VictimID:     victim.ID,
		ShooterID:    proj.OwnerID,
		Damage:       proj.Damage,
		Health:       victim.HP,
		ProjectileID: proj.ID,
	}})
	if !died {
		return
	}

	victim.Deaths++
	killerName := ""
	if shooter, ok := g.players[proj.OwnerID]; ok {
		shooter.Kills++
		killerName = shooter.Name
	}

	g.broadcastLocked(Envelope{T: MsgPlayerKilled, Data: KilledMsg{
		VictimID:   victim.ID,
		KillerID:   proj.OwnerID,
		VictimName: victim.Name,
		KillerName: killerName,
	}})
	g.log.Info("player killed",
		zap.String("victim", victim.ID),
		zap.String("killer", proj.OwnerID))
	g.analytics.Track(EvtPlayerKill, proj.OwnerID, victim.ID)

	id := victim.ID
	time.AfterFunc(RespawnDelay, func() { g.respawnPlayer(id) })
}

// respawnPlayer is the delayed death -> alive transition. The player may
// have disconnected since the timer was armed; that is a normal no-op.
func (g *Game) respawnPlayer(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[playerID]
	if !ok || p.Alive() {
		return
	}
	p.ResetForSpawn(SpawnPosition())
	g.broadcastLocked(Envelope{T: MsgPlayerRespawned, Data: RespawnedMsg{
		ID:     p.ID,
		Pos:    p.Pos,
		Health: p.HP,
	}})
}
