package availability

import (
	"context"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Reserve(ctx context.Context, id int64) error
	Release(ctx context.Context, id int64) (bool, error)
	Cancel(ctx context.Context, ids []int64, reason string) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
