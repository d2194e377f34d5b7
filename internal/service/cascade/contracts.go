package cascade

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// SlotLedger интерфейс реестра доступности слотов
type SlotLedger interface {
	Cancel(ctx context.Context, slotIDs []int64, reason string) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CancelActiveBySlotIDs(ctx context.Context, slotIDs []int64, reason string, at time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
