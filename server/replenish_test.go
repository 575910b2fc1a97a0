package server

import (
	"testing"
	"time"
)

func TestStepReplenishmentSpawnsClusterUnderGlobalTarget(t *testing.T) {
	cfg := DefaultRoomConfig()
	cfg.FoodCoveragePercent = 20 // desired = floor(0.2*2000) = 400
	cfg.FoodNearPlayerTarget = 0
	r := newTestRoom(t, cfg, time.Unix(0, 0))

	r.stepReplenishment()

	if len(r.food) == 0 {
		t.Fatal("expected a food cluster to spawn when under the global density target")
	}
}

func TestStepReplenishmentSkipsClusterWhenAtTarget(t *testing.T) {
	cfg := DefaultRoomConfig()
	cfg.FoodCoveragePercent = 0 // desired = 0
	cfg.FoodNearPlayerTarget = 0
	r := newTestRoom(t, cfg, time.Unix(0, 0))

	r.stepReplenishment()

	if len(r.food) != 0 {
		t.Fatalf("expected no cluster spawn once at target, got %d", len(r.food))
	}
}

func TestStepReplenishmentTopsUpNearPlayerDeficit(t *testing.T) {
	cfg := DefaultRoomConfig()
	cfg.FoodCoveragePercent = 0
	cfg.FoodNearPlayerTarget = 5
	r := newTestRoom(t, cfg, time.Unix(0, 0))
	addPlayer(r, "a", Vec2{X: 0, Y: 0}, 0, 0, false)

	r.stepReplenishment()

	if len(r.food) != 5 {
		t.Fatalf("expected 5 pellets topped up near the player, got %d", len(r.food))
	}
	for _, f := range r.food {
		d2 := Dist2(f.Pos, Vec2{X: 0, Y: 0})
		if d2 < 900*900-1e-6 || d2 > 1500*1500+1e-6 {
			t.Fatalf("topped-up pellet at distance² %v outside [900,1500] ring", d2)
		}
	}
}
