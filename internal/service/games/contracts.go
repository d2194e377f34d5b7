package games

import (
	"context"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// GameRepository интерфейс репозитория игр
type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) (*domain.Game, error)
	GetByID(ctx context.Context, id int64) (*domain.Game, error)
	List(ctx context.Context, gameType *domain.GameType) ([]*domain.Game, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
