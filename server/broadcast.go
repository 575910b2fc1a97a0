package server

import (
	"math"
	"sort"
	"time"
)

const visibilityFoodRadius = 1800
const visibilityFoodCap = 250
const visibilityPlayerRadius = 2600
const visibilityPlayerCap = 40
const ownBodyMaxPoints = 60
const ownBodyTrailingWindow = 180

// runBroadcastLoop is a room's independent broadcast-rate goroutine. It
// takes the room's read lock only to copy the data it needs; marshaling
// and socket writes happen outside the lock.
func (r *Room) runBroadcastLoop(stop <-chan struct{}) {
	interval := r.broadcastInterval
	if interval <= 0 {
		interval = tickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.broadcastOnce()
		}
	}
}

func (r *Room) broadcastOnce() {
	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return
	}
	recipients := playerSlice(r)
	leaderboard := buildLeaderboard(r.players, r.order)
	minimap := r.minimap
	serverNow := r.clock.Now().UnixMilli()
	frames := make([]StateFrame, len(recipients))
	for i, recipient := range recipients {
		frames[i] = StateFrame{
			Type:        "state",
			ServerNow:   serverNow,
			Players:     visiblePlayers(recipients, recipient),
			Food:        visibleFood(r.food, recipient),
			Leaderboard: leaderboard,
			Minimap:     minimap,
		}
	}
	r.mu.RUnlock()

	for i, recipient := range recipients {
		recipient.Session.Send(frames[i])
	}
}

func playerSlice(r *Room) []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

// buildLeaderboard returns the top 10 players by score, rounded, stable
// on ties .4 step 1.
func buildLeaderboard(players map[PlayerID]*Player, order []PlayerID) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(order))
	for _, id := range order {
		p := players[id]
		entries = append(entries, LeaderboardEntry{PlayerID: string(p.ID), Name: p.Name, Score: math.Round(p.Score)})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > 10 {
		entries = entries[:10]
	}
	return entries
}

// visiblePlayers returns recipient's interest set: itself first, then
// every other player within 2600 units, capped at 40, insertion-order
// first-fit .4 step 3.
func visiblePlayers(all []*Player, recipient *Player) []PlayerDTO {
	out := make([]PlayerDTO, 0, visibilityPlayerCap)
	out = append(out, playerDTO(recipient))
	for _, p := range all {
		if len(out) >= visibilityPlayerCap {
			break
		}
		if p.ID == recipient.ID {
			continue
		}
		if Dist2(p.Head, recipient.Head) <= visibilityPlayerRadius*visibilityPlayerRadius {
			out = append(out, playerDTO(p))
		}
	}
	return out
}

func playerDTO(p *Player) PlayerDTO {
	return PlayerDTO{
		ID:       string(p.ID),
		Name:     p.Name,
		Score:    math.Round(p.Score),
		Body:     decimateBody(p.Body),
		Boosting: p.Boost,
	}
}

// decimateBody keeps every third of the trailing 180 points, capped at 60
// points total .4 step 3.
func decimateBody(body []Vec2) [][2]float64 {
	trailing := body
	if len(trailing) > ownBodyTrailingWindow {
		trailing = trailing[len(trailing)-ownBodyTrailingWindow:]
	}
	out := make([][2]float64, 0, ownBodyMaxPoints)
	for i := 0; i < len(trailing); i += 3 {
		out = append(out, [2]float64{trailing[i].X, trailing[i].Y})
	}
	if len(out) > ownBodyMaxPoints {
		out = out[len(out)-ownBodyMaxPoints:]
	}
	return out
}

// visibleFood returns food within 1800 units of recipient, capped at 250,
// insertion-order first-fit .4 step 3.
func visibleFood(food []*Food, recipient *Player) []FoodDTO {
	out := make([]FoodDTO, 0, visibilityFoodCap)
	for _, f := range food {
		if len(out) >= visibilityFoodCap {
			break
		}
		if Dist2(f.Pos, recipient.Head) <= visibilityFoodRadius*visibilityFoodRadius {
			out = append(out, FoodDTO{ID: string(f.ID), X: f.Pos.X, Y: f.Pos.Y, Value: f.Value})
		}
	}
	return out
}
