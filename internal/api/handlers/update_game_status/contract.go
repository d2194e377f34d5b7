package update_game_status

import (
	"context"

	updateGameStatus "github.com/m04kA/SMC-GameBookingService/internal/usecase/update_game_status"
)

type UpdateGameStatusUseCase interface {
	Execute(ctx context.Context, req *updateGameStatus.Request) (*updateGameStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
