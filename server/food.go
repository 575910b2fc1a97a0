package server

// Food is a single pellet of the world's food ecosystem.
type Food struct {
	ID    FoodID
	Pos   Vec2
	Value float64
}
