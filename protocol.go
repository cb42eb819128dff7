package main

import "encoding/json"

// Client -> Server message types
const (
	MsgPlayerUpdate = "player-update"
	MsgPlayerShoot  = "player-shoot"
	MsgPlayerReload = "player-reload"
)

// Server -> Client message types
const (
	MsgGameInit        = "game-init"
	MsgPlayerJoined    = "player-joined"
	MsgPlayerFired     = "player-fired"
	MsgReloadComplete  = "reload-complete"
	MsgPlayerHit       = "player-hit"
	MsgPlayerKilled    = "player-killed"
	MsgPlayerRespawned = "player-respawned"
	MsgBulletExpired   = "bullet-expired"
	MsgGameUpdate      = "game-update"
	MsgPlayerLeft      = "player-left"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// Vec3 is a 3D vector (position, rotation, direction)
type Vec3 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z" msgpack:"z"`
}

// Vec2 is a horizontal-plane velocity
type Vec2 struct {
	X float64 `json:"x" msgpack:"x"`
	Z float64 `json:"z" msgpack:"z"`
}

// PlayerUpdateMsg is sent by the client with its claimed transform
type PlayerUpdateMsg struct {
	Pos Vec3 `json:"pos"`
	Rot Vec3 `json:"rot"`
	Vel Vec2 `json:"vel"`
}

// ShootMsg is sent by the client to fire a projectile
type ShootMsg struct {
	Pos Vec3 `json:"pos"`
	Dir Vec3 `json:"dir"`
}

// PlayerState is the public projection of a player, broadcast in snapshots
type PlayerState struct {
	ID        string `json:"id" msgpack:"id"`
	Name      string `json:"n" msgpack:"n"`
	Pos       Vec3   `json:"p" msgpack:"p"`
	Rot       Vec3   `json:"r" msgpack:"r"`
	Vel       Vec2   `json:"v" msgpack:"v"`
	HP        int    `json:"hp" msgpack:"hp"`
	MaxHP     int    `json:"mhp" msgpack:"mhp"`
	Ammo      int    `json:"am" msgpack:"am"`
	Reserve   int    `json:"rs" msgpack:"rs"`
	Reloading bool   `json:"rl" msgpack:"rl"`
	Kills     int    `json:"k" msgpack:"k"`
	Deaths    int    `json:"d" msgpack:"d"`
}

// ProjectileState is the reduced projection of a projectile
type ProjectileState struct {
	ID  string `json:"id" msgpack:"id"`
	Pos Vec3   `json:"p" msgpack:"p"`
	Dir Vec3   `json:"d" msgpack:"d"`
}

// GameState is the periodic snapshot broadcast to all peers.
// Sent msgpack-encoded as a binary frame to bound bandwidth.
type GameState struct {
	Players     []PlayerState     `json:"p" msgpack:"p"`
	Projectiles []ProjectileState `json:"pr" msgpack:"pr"`
	Tick        uint64            `json:"t" msgpack:"t"`
}

// GameInitMsg is sent to a peer right after it connects
type GameInitMsg struct {
	ID      string        `json:"id"`
	Players []PlayerState `json:"players"`
	Tick    uint64        `json:"tick"`
}

// FiredMsg is broadcast when a fire action is accepted
type FiredMsg struct {
	PlayerID     string `json:"id"`
	ProjectileID string `json:"pid"`
	Pos          Vec3   `json:"pos"`
	Dir          Vec3   `json:"dir"`
	Ammo         int    `json:"ammo"`
}

// ReloadCompleteMsg is sent to the owning peer when its reload finishes
type ReloadCompleteMsg struct {
	Ammo    int `json:"ammo"`
	Reserve int `json:"reserve"`
}

// HitMsg is broadcast when a projectile hits a player
type HitMsg struct {
	VictimID     string `json:"id"`
	ShooterID    string `json:"sid"`
	Damage       int    `json:"dmg"`
	Health       int    `json:"hp"`
	ProjectileID string `json:"pid"`
}

// KilledMsg is broadcast when a hit is lethal
type KilledMsg struct {
	VictimID   string `json:"id"`
	KillerID   string `json:"kid"`
	VictimName string `json:"n"`
	KillerName string `json:"kn"`
}

// RespawnedMsg is broadcast when a dead player comes back
type RespawnedMsg struct {
	ID     string `json:"id"`
	Pos    Vec3   `json:"pos"`
	Health int    `json:"hp"`
}

// ExpiredMsg is broadcast when a projectile is removed without hitting anyone
type ExpiredMsg struct {
	ID string `json:"id"`
}

// LeftMsg is broadcast when a player disconnects or is evicted
type LeftMsg struct {
	ID string `json:"id"`
}
