package server

import (
	"testing"
	"time"
)

func TestBuildLeaderboardTopTenDescendingStable(t *testing.T) {
	r := newTestRoom(t, DefaultRoomConfig(), time.Unix(0, 0))
	for i := 0; i < 12; i++ {
		addPlayer(r, PlayerID(string(rune('a'+i))), Vec2{}, 0, float64(i), false)
	}

	board := buildLeaderboard(r.players, r.order)

	if len(board) != 10 {
		t.Fatalf("expected top 10, got %d", len(board))
	}
	for i := 1; i < len(board); i++ {
		if board[i].Score > board[i-1].Score {
			t.Fatalf("leaderboard not sorted descending at %d", i)
		}
	}
	if board[0].Score != 11 {
		t.Fatalf("expected the highest score first, got %v", board[0].Score)
	}
}

func TestVisiblePlayersAlwaysIncludesRecipientFirst(t *testing.T) {
	r := newTestRoom(t, DefaultRoomConfig(), time.Unix(0, 0))
	recipient := addPlayer(r, "me", Vec2{X: 0, Y: 0}, 0, 0, false)
	addPlayer(r, "far", Vec2{X: 100000, Y: 100000}, 0, 0, false)

	out := visiblePlayers(playerSlice(r), recipient)

	if len(out) != 1 || out[0].ID != string(recipient.ID) {
		t.Fatalf("expected only the recipient visible, got %+v", out)
	}
}

func TestVisiblePlayersIncludesOthersWithinRadius(t *testing.T) {
	r := newTestRoom(t, DefaultRoomConfig(), time.Unix(0, 0))
	recipient := addPlayer(r, "me", Vec2{X: 0, Y: 0}, 0, 0, false)
	near := addPlayer(r, "near", Vec2{X: 100, Y: 0}, 0, 0, false)

	out := visiblePlayers(playerSlice(r), recipient)

	if len(out) != 2 || out[1].ID != string(near.ID) {
		t.Fatalf("expected recipient then the nearby player, got %+v", out)
	}
}

func TestVisiblePlayersCapsAtForty(t *testing.T) {
	r := newTestRoom(t, DefaultRoomConfig(), time.Unix(0, 0))
	recipient := addPlayer(r, "me", Vec2{X: 0, Y: 0}, 0, 0, false)
	for i := 0; i < 60; i++ {
		addPlayer(r, PlayerID(string(rune(i))+"x"), Vec2{X: float64(i), Y: 0}, 0, 0, false)
	}

	out := visiblePlayers(playerSlice(r), recipient)

	if len(out) != visibilityPlayerCap {
		t.Fatalf("expected cap at %d, got %d", visibilityPlayerCap, len(out))
	}
}

// food beyond 1800 units of the recipient is excluded from its state frame.
func TestBoundaryScenario6FoodVisibilityRadius(t *testing.T) {
	r := newTestRoom(t, DefaultRoomConfig(), time.Unix(0, 0))
	recipient := addPlayer(r, "me", Vec2{X: 0, Y: 0}, 0, 0, false)
	near := &Food{ID: newFoodID(), Pos: Vec2{X: 1799, Y: 0}, Value: 1}
	far := &Food{ID: newFoodID(), Pos: Vec2{X: 1801, Y: 0}, Value: 1}

	out := visibleFood([]*Food{near, far}, recipient)

	if len(out) != 1 || out[0].ID != string(near.ID) {
		t.Fatalf("expected only the in-range pellet visible, got %+v", out)
	}
}

func TestVisibleFoodCapsAtTwoFifty(t *testing.T) {
	r := newTestRoom(t, DefaultRoomConfig(), time.Unix(0, 0))
	recipient := addPlayer(r, "me", Vec2{X: 0, Y: 0}, 0, 0, false)
	food := make([]*Food, 0, 300)
	for i := 0; i < 300; i++ {
		food = append(food, &Food{ID: newFoodID(), Pos: Vec2{X: float64(i), Y: 0}, Value: 1})
	}

	out := visibleFood(food, recipient)

	if len(out) != visibilityFoodCap {
		t.Fatalf("expected cap at %d, got %d", visibilityFoodCap, len(out))
	}
}

func TestDecimateBodyKeepsTrailingWindowAndStride(t *testing.T) {
	body := make([]Vec2, 0, 400)
	for i := 0; i < 400; i++ {
		body = append(body, Vec2{X: float64(i), Y: 0})
	}

	out := decimateBody(body)

	if len(out) > ownBodyMaxPoints {
		t.Fatalf("expected at most %d points, got %d", ownBodyMaxPoints, len(out))
	}
	// trailing window starts at index 220 (400-180); every third point from there.
	if out[0][0] != float64(220) {
		t.Fatalf("expected decimation to start at the trailing window, got %v", out[0])
	}
}
