package main

// CheckHit reports whether a projectile position is within the hit radius
// of a player position (3D Euclidean distance, strict inequality)
func CheckHit(projPos, playerPos Vec3) bool {
	return Distance3(projPos, playerPos) < HitRadius
}

// checkCollisionsLocked tests every live projectile against every live,
// non-shooter player. Brute force O(projectiles x players); fine at the
// 500-projectile cap and deliberately not spatially partitioned.
// At most one hit per projectile: the first player in join order wins,
// and both scans use explicit ordering so a tick is reproducible.
func (g *Game) checkCollisionsLocked() {
	players := g.playersInOrderLocked()
	for _, proj := range g.projectilesInOrderLocked() {
		for _, p := range players {
			if p.ID == proj.OwnerID || !p.Alive() {
				continue
			}
			if !CheckHit(proj.Pos, p.Pos) {
				continue
			}
			delete(g.projectiles, proj.ID)
			g.resolveHitLocked(proj, p)
			break
		}
	}
}
