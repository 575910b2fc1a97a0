package server

import "fmt"

// RoomConfig holds the tunable parameters of a Room's world. All fields
// are validated against their documented ranges before a Room is
// created or reconfigured.
type RoomConfig struct {
	MapSize                   float64
	MaxPlayers                int
	FoodCoveragePercent       float64
	FoodSpawnRatePerSecond    float64
	EmptyRoomTTLSeconds       float64
	SuctionRadiusMultiplier   float64
	SuctionStrengthMultiplier float64
	FoodValueMultiplier       float64
	FoodNearPlayerTarget      int
	BodyRadiusMultiplier      float64
	BodyLengthMultiplier      float64
}

// PartialRoomConfig mirrors RoomConfig with pointer fields so a caller can
// patch only the keys it wants to change.
type PartialRoomConfig struct {
	MapSize                   *float64 `json:"mapSize,omitempty"`
	MaxPlayers                *int     `json:"maxPlayers,omitempty"`
	FoodCoveragePercent       *float64 `json:"foodCoveragePercent,omitempty"`
	FoodSpawnRatePerSecond    *float64 `json:"foodSpawnRatePerSecond,omitempty"`
	EmptyRoomTTLSeconds       *float64 `json:"emptyRoomTtlSeconds,omitempty"`
	SuctionRadiusMultiplier   *float64 `json:"suctionRadiusMultiplier,omitempty"`
	SuctionStrengthMultiplier *float64 `json:"suctionStrengthMultiplier,omitempty"`
	FoodValueMultiplier       *float64 `json:"foodValueMultiplier,omitempty"`
	FoodNearPlayerTarget      *int     `json:"foodNearPlayerTarget,omitempty"`
	BodyRadiusMultiplier      *float64 `json:"bodyRadiusMultiplier,omitempty"`
	BodyLengthMultiplier      *float64 `json:"bodyLengthMultiplier,omitempty"`
}

// DefaultRoomConfig returns the out-of-the-box template used by
// RoomManager.create until setDefault is called.
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{
		MapSize:                   5000,
		MaxPlayers:                100,
		FoodCoveragePercent:       20,
		FoodSpawnRatePerSecond:    500,
		EmptyRoomTTLSeconds:       120,
		SuctionRadiusMultiplier:   1,
		SuctionStrengthMultiplier: 1,
		FoodValueMultiplier:       1,
		FoodNearPlayerTarget:      80,
		BodyRadiusMultiplier:      1,
		BodyLengthMultiplier:      1,
	}
}

// MergeConfig applies patch over base, validating the resulting whole
// against its documented ranges. On validation failure the error names
// every offending field as a CONFIG_INVALID error.
func MergeConfig(base RoomConfig, patch PartialRoomConfig) (RoomConfig, error) {
	out := base
	if patch.MapSize != nil {
		out.MapSize = *patch.MapSize
	}
	if patch.MaxPlayers != nil {
		out.MaxPlayers = *patch.MaxPlayers
	}
	if patch.FoodCoveragePercent != nil {
		out.FoodCoveragePercent = *patch.FoodCoveragePercent
	}
	if patch.FoodSpawnRatePerSecond != nil {
		out.FoodSpawnRatePerSecond = *patch.FoodSpawnRatePerSecond
	}
	if patch.EmptyRoomTTLSeconds != nil {
		out.EmptyRoomTTLSeconds = *patch.EmptyRoomTTLSeconds
	}
	if patch.SuctionRadiusMultiplier != nil {
		out.SuctionRadiusMultiplier = *patch.SuctionRadiusMultiplier
	}
	if patch.SuctionStrengthMultiplier != nil {
		out.SuctionStrengthMultiplier = *patch.SuctionStrengthMultiplier
	}
	if patch.FoodValueMultiplier != nil {
		out.FoodValueMultiplier = *patch.FoodValueMultiplier
	}
	if patch.FoodNearPlayerTarget != nil {
		out.FoodNearPlayerTarget = *patch.FoodNearPlayerTarget
	}
	if patch.BodyRadiusMultiplier != nil {
		out.BodyRadiusMultiplier = *patch.BodyRadiusMultiplier
	}
	if patch.BodyLengthMultiplier != nil {
		out.BodyLengthMultiplier = *patch.BodyLengthMultiplier
	}

	if errs := validateConfig(out); len(errs) > 0 {
		return RoomConfig{}, &ConfigInvalidError{Fields: errs}
	}
	return out, nil
}

// ConfigInvalidError lists every field that failed range validation.
type ConfigInvalidError struct {
	Fields []string
}

func (e *ConfigInvalidError) Error() string {
	return fmt.Sprintf("config invalid: %v", e.Fields)
}

func validateConfig(c RoomConfig) []string {
	var errs []string
	inRange := func(name string, v, lo, hi float64) {
		if v < lo || v > hi {
			errs = append(errs, fmt.Sprintf("%s=%v must be in [%v,%v]", name, v, lo, hi))
		}
	}
	inRange("mapSize", c.MapSize, 1000, 20000)
	inRange("maxPlayers", float64(c.MaxPlayers), 2, 500)
	inRange("foodCoveragePercent", c.FoodCoveragePercent, 0, 50)
	inRange("foodSpawnRatePerSecond", c.FoodSpawnRatePerSecond, 0, 10000)
	inRange("emptyRoomTtlSeconds", c.EmptyRoomTTLSeconds, 0, 3600)
	inRange("suctionRadiusMultiplier", c.SuctionRadiusMultiplier, 0, 5)
	inRange("suctionStrengthMultiplier", c.SuctionStrengthMultiplier, 0, 5)
	inRange("foodValueMultiplier", c.FoodValueMultiplier, 0, 10)
	inRange("foodNearPlayerTarget", float64(c.FoodNearPlayerTarget), 0, 400)
	inRange("bodyRadiusMultiplier", c.BodyRadiusMultiplier, 0, 10)
	inRange("bodyLengthMultiplier", c.BodyLengthMultiplier, 0, 10)
	return errs
}
