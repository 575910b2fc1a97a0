package server

import "math"

const minimapCellSize = 600
const minimapMaxCells = 200
const minimapRefreshInterval = 500 // ms

// rebuildMinimap buckets every food pellet into 600-unit cells, keeps the
// top 200 by summed value, and adds a compact player list. Caller holds
// r.mu (read or write).
func (r *Room) rebuildMinimap() *MinimapDTO {
	type cellKey struct{ cx, cy int64 }
	cells := make(map[cellKey]*MinimapCell)

	for _, f := range r.food {
		key := cellKey{
			cx: int64(math.Floor(f.Pos.X / minimapCellSize)),
			cy: int64(math.Floor(f.Pos.Y / minimapCellSize)),
		}
		c, ok := cells[key]
		if !ok {
			c = &MinimapCell{
				X: (float64(key.cx) + 0.5) * minimapCellSize,
				Y: (float64(key.cy) + 0.5) * minimapCellSize,
			}
			cells[key] = c
		}
		c.SumValue += f.Value
		c.Count++
	}

	all := make([]MinimapCell, 0, len(cells))
	for _, c := range cells {
		all = append(all, *c)
	}
	sortCellsByValueDesc(all)
	if len(all) > minimapMaxCells {
		all = all[:minimapMaxCells]
	}

	players := make([]MinimapPlayerDTO, 0, len(r.order))
	for _, id := range r.order {
		p := r.players[id]
		players = append(players, MinimapPlayerDTO{
			ID:    string(p.ID),
			Name:  p.Name,
			Score: math.Round(p.Score),
			X:     math.Round(p.Head.X),
			Y:     math.Round(p.Head.Y),
		})
	}

	return &MinimapDTO{Cells: all, Players: players}
}

func sortCellsByValueDesc(cells []MinimapCell) {
	// insertion sort is plenty: this runs at most once per
	// minimapRefreshInterval (500 ms), over one cell per occupied
	// 600-unit square of the map.
	for i := 1; i < len(cells); i++ {
		j := i
		for j > 0 && cells[j-1].SumValue < cells[j].SumValue {
			cells[j-1], cells[j] = cells[j], cells[j-1]
			j--
		}
	}
}
