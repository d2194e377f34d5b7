package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// GameRepository интерфейс репозитория игр
type GameRepository interface {
	List(ctx context.Context, gameType *domain.GameType) ([]*domain.Game, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
