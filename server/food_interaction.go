package server

import "math"

// stepFoodInteraction scans every Food against every Player in the room's
// deterministic order, consuming or pulling it.
func (r *Room) stepFoodInteraction(dt float64) {
	cfg := r.config
	remaining := r.food[:0]

	for _, f := range r.food {
		eaten := false
		for _, id := range r.order {
			p := r.players[id]
			radius := bodyRadius(p.Score, cfg.BodyRadiusMultiplier)
			if Dist2(f.Pos, p.Head) <= radius*radius {
				p.Score += f.Value * cfg.FoodValueMultiplier
				r.metrics.IncFoodEaten()
				eaten = true
				break
			}

			sRadius := suctionRadius(p.Score, cfg.SuctionRadiusMultiplier)
			if sRadius <= 0 {
				continue
			}
			d2 := Dist2(f.Pos, p.Head)
			if d2 > sRadius*sRadius {
				continue
			}
			d := math.Sqrt(d2)
			if d < 1e-9 {
				continue
			}
			pull := suctionPull(p.Score, cfg.SuctionStrengthMultiplier)
			step := pull * dt / d
			if step > 1 {
				step = 1
			}
			f.Pos.X += (p.Head.X - f.Pos.X) * step
			f.Pos.Y += (p.Head.Y - f.Pos.Y) * step
		}
		if !eaten {
			remaining = append(remaining, f)
		}
	}
	r.food = remaining
}
