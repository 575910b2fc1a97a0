package server

import "math"

// stepMotion advances one player's heading and position by dt seconds and
// applies boost decay. It may append a dropped Food
// pellet to r.food when boosting procs its drop chance.
func (r *Room) stepMotion(p *Player, dt float64) {
	cfg := r.config

	maxTurn := turnRate(p.Score) * dt
	p.Dir = RotateTowards(p.Dir, p.Target, maxTurn)

	speed := moveSpeed(p.Score, p.Boost)
	next := Vec2{
		X: p.Head.X + math.Cos(p.Dir)*speed*dt,
		Y: p.Head.Y + math.Sin(p.Dir)*speed*dt,
	}
	p.Head = ClampSquare(next, cfg.MapSize)

	p.Body = append(p.Body, p.Head)
	p.Body = TrimPolylineToLength(p.Body, targetLength(p.Score, cfg.BodyLengthMultiplier))

	if p.Boost && p.Score > 1 {
		p.Score -= boostScoreDecay(p.Score)
		if r.rng.Float64() < 0.3 {
			jx := (r.rng.Float64()*2 - 1) * 4
			jy := (r.rng.Float64()*2 - 1) * 4
			r.food = append(r.food, &Food{
				ID:    newFoodID(),
				Pos:   Vec2{X: p.Head.X + jx, Y: p.Head.Y + jy},
				Value: 0.5,
			})
		}
	}
}
