package list_games

import (
	"context"

	"github.com/m04kA/SMC-GameBookingService/internal/service/games/models"
)

type GameService interface {
	List(ctx context.Context, gameType *string) (*models.GameListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
