package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string, at time.Time) error
}

// SlotLedger интерфейс реестра доступности слотов
type SlotLedger interface {
	Get(ctx context.Context, slotID int64) (*domain.Slot, error)
	Release(ctx context.Context, slotID int64) (bool, error)
}

// Notifier уведомляет владельца об отмене
type Notifier interface {
	BookingCancelled(ctx context.Context, booking *domain.Booking)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
