package generate_slots

import (
	"context"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// GameRepository интерфейс репозитория игр
type GameRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Game, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*domain.Slot) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
