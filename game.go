package main

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

const (
	TickRate          = 60 // simulation ticks per second
	BroadcastRate     = 20 // state broadcasts per second
	TickDuration      = time.Second / TickRate
	BroadcastDuration = time.Second / BroadcastRate
	SweepInterval     = 5 * time.Second // backstop projectile sweep
)

// Broadcaster is the per-peer publish interface the simulation writes to.
// Implementations must never block.
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Game owns the authoritative world state: all players and projectiles.
// Every mutation — peer events, tick updates, timer callbacks — serializes
// on mu, so no two mutations interleave on the same record.
type Game struct {
	mu          sync.RWMutex
	players     map[string]*Player
	projectiles map[string]*Projectile
	clients     map[string]Broadcaster // playerID -> peer
	tick        uint64
	joinSeq     uint64
	projSeq     uint64
	running     bool
	stop        chan struct{}

	log       *zap.Logger
	analytics *Analytics
}

// NewGame creates an empty world
func NewGame(log *zap.Logger, analytics *Analytics) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		players:     make(map[string]*Player),
		projectiles: make(map[string]*Projectile),
		clients:     make(map[string]Broadcaster),
		stop:        make(chan struct{}),
		log:         log,
		analytics:   analytics,
	}
}

// Run drives the simulation and broadcast loops until Stop. The tick and
// broadcast rates are deliberately independent: simulation fidelity and
// outbound bandwidth are bounded separately.
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	tick := time.NewTicker(TickDuration)
	broadcast := time.NewTicker(BroadcastDuration)
	sweep := time.NewTicker(SweepInterval)
	defer tick.Stop()
	defer broadcast.Stop()
	defer sweep.Stop()

	for {
		select {
		case <-tick.C:
			g.update()
		case <-broadcast.C:
			g.broadcastState()
		case <-sweep.C:
			g.sweepProjectiles()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the loops
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		g.running = false
		close(g.stop)
	}
}

// Join adds a player for a new connection, sends it the init message and
// announces it to everyone else
func (g *Game) Join(name string, client Broadcaster) *Player {
	now := time.Now()

	g.mu.Lock()
	g.joinSeq++
	p := NewPlayer(uuid.NewString(), name, g.joinSeq, now)
	g.players[p.ID] = p
	g.clients[p.ID] = client

	client.SendJSON(Envelope{T: MsgGameInit, Data: GameInitMsg{
		ID:      p.ID,
		Players: g.playerStatesLocked(),
		Tick:    g.tick,
	}})
	g.broadcastExceptLocked(p.ID, Envelope{T: MsgPlayerJoined, Data: p.ToState()})
	g.mu.Unlock()

	g.log.Info("player joined", zap.String("id", p.ID), zap.String("name", name))
	g.analytics.Track(EvtPlayerJoin, p.ID, name)
	return p
}

// Leave removes a departed player. Safe to call for an already-removed id
// (e.g. disconnect after inactivity eviction); the departure notification
// is published at most once.
func (g *Game) Leave(playerID string) {
	g.mu.Lock()
	p, ok := g.players[playerID]
	if !ok {
		g.mu.Unlock()
		return
	}
	delete(g.players, playerID)
	delete(g.clients, playerID)
	g.broadcastLocked(Envelope{T: MsgPlayerLeft, Data: LeftMsg{ID: playerID}})
	g.mu.Unlock()

	g.log.Info("player left", zap.String("id", playerID), zap.String("name", p.Name))
	g.analytics.Track(EvtPlayerLeave, playerID, p.Name)
}

// HandleMove applies a validated transform update. Out-of-bounds positions
// are dropped whole; overspeed velocities are clamped, never rejected.
func (g *Game) HandleMove(playerID string, msg PlayerUpdateMsg) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[playerID]
	if !ok || !p.Alive() {
		return
	}
	if !ValidatePosition(msg.Pos) {
		return
	}
	p.Pos = msg.Pos
	p.Rot = msg.Rot
	p.Vel = ClampVelocity(msg.Vel, MaxMoveSpeed)
	p.LastInput = time.Now()
}

// HasPlayer reports whether a player id is present in the store
func (g *Game) HasPlayer(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.players[id]
	return ok
}

// PlayerCount returns the number of players
func (g *Game) PlayerCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.players)
}

// StatusSnapshot is the read-only projection consumed by the status surface
type StatusSnapshot struct {
	Players     int    `json:"players"`
	Projectiles int    `json:"projectiles"`
	Tick        uint64 `json:"tick"`
}

// Status returns current counts for health/metrics reporting
func (g *Game) Status() StatusSnapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return StatusSnapshot{
		Players:     len(g.players),
		Projectiles: len(g.projectiles),
		Tick:        g.tick,
	}
}

// update runs one simulation tick: advance projectiles, expire the old
// ones, resolve collisions, then sweep inactive players
func (g *Game) update() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tick++
	now := time.Now()

	for _, proj := range g.projectilesInOrderLocked() {
		proj.Advance()
		if proj.Expired(now) {
			delete(g.projectiles, proj.ID)
			g.broadcastLocked(Envelope{T: MsgBulletExpired, Data: ExpiredMsg{ID: proj.ID}})
		}
	}

	g.checkCollisionsLocked()
	g.sweepInactiveLocked(now)
}

// sweepInactiveLocked evicts players whose last input is older than the
// staleness threshold
func (g *Game) sweepInactiveLocked(now time.Time) {
	for _, p := range g.playersInOrderLocked() {
		if now.Sub(p.LastInput) <= StaleAfter {
			continue
		}
		delete(g.players, p.ID)
		delete(g.clients, p.ID)
		g.broadcastLocked(Envelope{T: MsgPlayerLeft, Data: LeftMsg{ID: p.ID}})
		g.log.Info("player evicted for inactivity", zap.String("id", p.ID))
		g.analytics.Track(EvtPlayerEvicted, p.ID, p.Name)
	}
}

// sweepProjectiles removes projectiles past their lifetime. The per-tick
// update already does this; the periodic sweep is an idempotent backstop
// using the same expiry rule.
func (g *Game) sweepProjectiles() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	for _, proj := range g.projectilesInOrderLocked() {
		if proj.Expired(now) {
			delete(g.projectiles, proj.ID)
			g.broadcastLocked(Envelope{T: MsgBulletExpired, Data: ExpiredMsg{ID: proj.ID}})
		}
	}
}

// insertProjectileLocked adds a projectile, evicting the oldest one first
// when the store is at capacity
func (g *Game) insertProjectileLocked(proj *Projectile) {
	if len(g.projectiles) >= MaxProjectiles {
		g.evictOldestProjectileLocked()
	}
	g.projectiles[proj.ID] = proj
}

func (g *Game) evictOldestProjectileLocked() {
	var oldest *Projectile
	for _, pr := range g.projectiles {
		if oldest == nil || pr.Seq < oldest.Seq {
			oldest = pr
		}
	}
	if oldest == nil {
		return
	}
	delete(g.projectiles, oldest.ID)
	g.broadcastLocked(Envelope{T: MsgBulletExpired, Data: ExpiredMsg{ID: oldest.ID}})
}

// broadcastState publishes the snapshot to all peers as a binary msgpack
// frame. Skipped entirely while nobody is connected.
func (g *Game) broadcastState() {
	g.mu.RLock()
	if len(g.players) == 0 {
		g.mu.RUnlock()
		return
	}
	state := GameState{
		Players:     g.playerStatesLocked(),
		Projectiles: g.projectileStatesLocked(),
		Tick:        g.tick,
	}
	peers := make([]Broadcaster, 0, len(g.clients))
	for _, c := range g.clients {
		peers = append(peers, c)
	}
	g.mu.RUnlock()

	data, err := msgpack.Marshal(state)
	if err != nil {
		g.log.Warn("snapshot encode failed", zap.Error(err))
		return
	}
	for _, c := range peers {
		c.SendBinary(data)
	}
}

// playersInOrderLocked returns players sorted by join order. Map iteration
// is not deterministic in Go, so every scan that must be reproducible
// within a tick goes through this.
func (g *Game) playersInOrderLocked() []*Player {
	out := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinSeq < out[j].JoinSeq })
	return out
}

// projectilesInOrderLocked returns projectiles sorted by creation order
func (g *Game) projectilesInOrderLocked() []*Projectile {
	out := make([]*Projectile, 0, len(g.projectiles))
	for _, pr := range g.projectiles {
		out = append(out, pr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

func (g *Game) playerStatesLocked() []PlayerState {
	players := g.playersInOrderLocked()
	out := make([]PlayerState, 0, len(players))
	for _, p := range players {
		out = append(out, p.ToState())
	}
	return out
}

func (g *Game) projectileStatesLocked() []ProjectileState {
	projs := g.projectilesInOrderLocked()
	out := make([]ProjectileState, 0, len(projs))
	for _, pr := range projs {
		out = append(out, pr.ToState())
	}
	return out
}

// broadcastLocked sends an envelope to every connected peer
func (g *Game) broadcastLocked(msg Envelope) {
	for _, c := range g.clients {
		c.SendJSON(msg)
	}
}

// broadcastExceptLocked sends an envelope to every peer but one
func (g *Game) broadcastExceptLocked(excludeID string, msg Envelope) {
	for id, c := range g.clients {
		if id == excludeID {
			continue
		}
		c.SendJSON(msg)
	}
}

// sendToLocked sends an envelope to a single peer if still connected
func (g *Game) sendToLocked(playerID string, msg Envelope) {
	if c, ok := g.clients[playerID]; ok {
		c.SendJSON(msg)
	}
}
