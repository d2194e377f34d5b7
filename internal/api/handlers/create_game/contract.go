package create_game

import (
	"context"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	"github.com/m04kA/SMC-GameBookingService/internal/service/games/models"
)

type GameService interface {
	Create(ctx context.Context, caller domain.Caller, req *models.CreateGameRequest) (*models.GameResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
