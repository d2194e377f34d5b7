package get_game_slots

import (
	"context"

	"github.com/m04kA/SMC-GameBookingService/internal/service/games/models"
)

type GameService interface {
	GetSlotsByDate(ctx context.Context, gameID int64, rawDate string) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
