package server

import (
	"testing"
	"time"
)

func TestStepCollisionHeadToHeadLowerScoreDies(t *testing.T) {
	r := newTestRoom(t, DefaultRoomConfig(), time.Unix(0, 0))
	weak := addPlayer(r, "weak", Vec2{X: 0, Y: 0}, 0, 5, false)
	addPlayer(r, "strong", Vec2{X: 0, Y: 0}, 0, 50, false)

	dead := r.stepCollision()

	if len(dead) != 1 || dead[0].ID != weak.ID {
		t.Fatalf("expected weak player to die, got %+v", dead)
	}
}

func TestStepCollisionExactTieFirstInsertedSurvives(t *testing.T) {
	r := newTestRoom(t, DefaultRoomConfig(), time.Unix(0, 0))
	first := addPlayer(r, "first", Vec2{X: 0, Y: 0}, 0, 10, false)
	second := addPlayer(r, "second", Vec2{X: 0, Y: 0}, 0, 10, false)

	dead := r.stepCollision()

	if len(dead) != 1 || dead[0].ID != second.ID {
		t.Fatalf("expected later-inserted player to die on exact tie, survivor should be %v, got dead=%+v", first.ID, dead)
	}
}

func TestStepCollisionQuickRejectSkipsDistantPlayers(t *testing.T) {
	r := newTestRoom(t, DefaultRoomConfig(), time.Unix(0, 0))
	addPlayer(r, "a", Vec2{X: 0, Y: 0}, 0, 10, false)
	addPlayer(r, "b", Vec2{X: 100000, Y: 100000}, 0, 10, false)

	dead := r.stepCollision()

	if len(dead) != 0 {
		t.Fatalf("expected no collisions between distant players, got %+v", dead)
	}
}

func TestBodyCollisionIgnoresHeadAdjacentSegment(t *testing.T) {
	body := make([]Vec2, 0, 20)
	for i := 0; i < 20; i++ {
		body = append(body, Vec2{X: float64(i), Y: 0})
	}
	b := &Player{Body: body}
	// index 19 (b's own head) sits in the last 12 points (8..19), excluded
	// from the scan; the nearest scanned point, index 7, is 12 units away,
	// beyond the 6+3.6 reach.
	head := Vec2{X: 19, Y: 0}
	if bodyCollision(head, 6, b, 6) {
		t.Fatal("expected the 12 points nearest b's own head to be excluded from the scan")
	}
}

func TestBodyCollisionDetectsHitOnOlderSegment(t *testing.T) {
	body := make([]Vec2, 0, 30)
	for i := 0; i < 30; i++ {
		body = append(body, Vec2{X: float64(i), Y: 0})
	}
	b := &Player{Body: body}
	head := Vec2{X: 0, Y: 0}
	if !bodyCollision(head, 6, b, 6) {
		t.Fatal("expected collision against an old segment of b's body")
	}
}
