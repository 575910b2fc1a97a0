package server

import "math"

// stepReplenishment maintains global and per-player food density.
func (r *Room) stepReplenishment() {
	cfg := r.config

	desired := math.Floor((cfg.FoodCoveragePercent / 100) * 2000)
	if float64(len(r.food)) < desired {
		r.spawnFoodCluster()
	}

	for _, id := range r.order {
		p := r.players[id]
		count := 0
		for _, f := range r.food {
			if Dist2(f.Pos, p.Head) <= 1500*1500 {
				count++
			}
		}
		if count < cfg.FoodNearPlayerTarget {
			r.topUpNearPlayer(p, cfg.FoodNearPlayerTarget-count)
		}
	}
}

// spawnFoodCluster drops 15-55 pellets around a random map center.
func (r *Room) spawnFoodCluster() {
	count := 15 + r.rng.Intn(41) // [15,55]
	center := Vec2{
		X: (r.rng.Float64()*2 - 1) * r.config.MapSize,
		Y: (r.rng.Float64()*2 - 1) * r.config.MapSize,
	}
	for i := 0; i < count; i++ {
		radius := 20 + r.rng.Float64()*80 // U(20,100)
		angle := r.rng.Float64() * 2 * math.Pi
		jx := (r.rng.Float64()*2 - 1) * 4
		jy := (r.rng.Float64()*2 - 1) * 4
		pos := Vec2{
			X: center.X + math.Cos(angle)*radius + jx,
			Y: center.Y + math.Sin(angle)*radius + jy,
		}
		pos = ClampSquare(pos, r.config.MapSize)
		r.food = append(r.food, &Food{
			ID:    newFoodID(),
			Pos:   pos,
			Value: 1 + r.rng.Float64()*3, // 1 + U(0,3)
		})
	}
}

// topUpNearPlayer adds n pellets on a ring around p.
func (r *Room) topUpNearPlayer(p *Player, n int) {
	for i := 0; i < n; i++ {
		dist := 900 + r.rng.Float64()*600 // U(900,1500)
		angle := r.rng.Float64() * 2 * math.Pi
		pos := Vec2{
			X: p.Head.X + math.Cos(angle)*dist,
			Y: p.Head.Y + math.Sin(angle)*dist,
		}
		pos = ClampSquare(pos, r.config.MapSize)
		r.food = append(r.food, &Food{
			ID:    newFoodID(),
			Pos:   pos,
			Value: 1,
		})
	}
}
