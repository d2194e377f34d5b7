package domain

import (
	"fmt"
	"time"
)

// GameType is the kind of a bookable board or court
type GameType string

const (
	GameTypeChess       GameType = "chess"
	GameTypeCarrom      GameType = "carrom"
	GameTypeTableTennis GameType = "table_tennis"
	GameTypeBadminton   GameType = "badminton"
	GameTypeFussBall    GameType = "fuss_ball"
)

// GameTypes lists every supported game type
var GameTypes = []GameType{
	GameTypeChess,
	GameTypeCarrom,
	GameTypeTableTennis,
	GameTypeBadminton,
	GameTypeFussBall,
}

// ParseGameType validates a raw game type
func ParseGameType(raw string) (GameType, error) {
	for _, t := range GameTypes {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown game type %q", ErrInvalidInput, raw)
}

// GameStatus is the operational status of a game
type GameStatus string

const (
	GameStatusActive      GameStatus = "active"
	GameStatusInactive    GameStatus = "inactive"
	GameStatusMaintenance GameStatus = "maintenance"
)

// ParseGameStatus validates a raw game status
func ParseGameStatus(raw string) (GameStatus, error) {
	switch s := GameStatus(raw); s {
	case GameStatusActive, GameStatusInactive, GameStatusMaintenance:
		return s, nil
	}
	return "", fmt.Errorf("%w: unknown game status %q", ErrInvalidInput, raw)
}

// CascadeReason returns the slot cancellation reason for a status that
// takes the game out of service. ok is false for the active status.
func (s GameStatus) CascadeReason() (reason string, ok bool) {
	switch s {
	case GameStatusInactive:
		return ReasonGameUnavailable, true
	case GameStatusMaintenance:
		return ReasonGameMaintenance, true
	}
	return "", false
}

// Game represents a bookable resource (board, table or court)
type Game struct {
	ID         int64
	Name       string
	Type       GameType
	MaxPlayers int // capacity including the booking owner
	Status     GameStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive returns true if the game accepts new slots and bookings
func (g *Game) IsActive() bool {
	return g.Status == GameStatusActive
}

// MaxOtherPlayers returns how many participants besides the owner fit in one booking
func (g *Game) MaxOtherPlayers() int {
	if g.MaxPlayers < 1 {
		return 0
	}
	return g.MaxPlayers - 1
}
