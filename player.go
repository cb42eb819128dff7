package main

import "time"

const (
	PlayerMaxHealth = 100
	MagazineSize    = 30
	StartingReserve = 120
	FireInterval    = 100 * time.Millisecond
	ReloadDuration  = 2000 * time.Millisecond
	RespawnDelay    = 3000 * time.Millisecond
	SpawnRange      = 25.0 // respawn positions land in [-SpawnRange, SpawnRange] on x/z
	SpawnHeight     = 1.0
	StaleAfter      = 60 * time.Second // no input for this long -> evicted
)

// Player is the authoritative record for one connected peer
type Player struct {
	ID        string
	Name      string
	JoinSeq   uint64 // join order, used for deterministic iteration
	Pos       Vec3
	Rot       Vec3
	Vel       Vec2
	HP        int
	MaxHP     int
	Ammo      int
	Reserve   int
	Reloading bool
	Kills     int
	Deaths    int
	LastInput time.Time
	LastFire  time.Time
}

// NewPlayer creates a player at a random spawn position
func NewPlayer(id, name string, joinSeq uint64, now time.Time) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		JoinSeq:   joinSeq,
		Pos:       SpawnPosition(),
		HP:        PlayerMaxHealth,
		MaxHP:     PlayerMaxHealth,
		Ammo:      MagazineSize,
		Reserve:   StartingReserve,
		LastInput: now,
	}
}

// SpawnPosition samples a spawn point uniformly in [-SpawnRange, SpawnRange]
// on both horizontal axes at a fixed height
func SpawnPosition() Vec3 {
	return Vec3{
		X: (randFloat()*2 - 1) * SpawnRange,
		Y: SpawnHeight,
		Z: (randFloat()*2 - 1) * SpawnRange,
	}
}

// Alive reports whether the player can move, fire and be hit
func (p *Player) Alive() bool {
	return p.HP > 0
}

// TakeDamage reduces HP, clamping at 0, and returns true if this hit killed
func (p *Player) TakeDamage(dmg int) bool {
	if !p.Alive() {
		return false
	}
	p.HP -= dmg
	if p.HP <= 0 {
		p.HP = 0
		return true
	}
	return false
}

// ResetForSpawn restores a dead player to a fresh combat state at pos
func (p *Player) ResetForSpawn(pos Vec3) {
	p.Pos = pos
	p.Vel = Vec2{}
	p.HP = p.MaxHP
	p.Ammo = MagazineSize
	p.Reserve = StartingReserve
	p.Reloading = false
}

// ToState converts to the public protocol projection
func (p *Player) ToState() PlayerState {
	return PlayerState{
		ID:        p.ID,
		Name:      p.Name,
		Pos:       p.Pos,
		Rot:       p.Rot,
		Vel:       p.Vel,
		HP:        p.HP,
		MaxHP:     p.MaxHP,
		Ammo:      p.Ammo,
		Reserve:   p.Reserve,
		Reloading: p.Reloading,
		Kills:     p.Kills,
		Deaths:    p.Deaths,
	}
}
