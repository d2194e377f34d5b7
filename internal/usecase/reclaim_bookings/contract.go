package reclaim_bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CancelUnconfirmedStartingBefore(ctx context.Context, deadline time.Time, reason string, at time.Time) ([]*domain.Booking, error)
}

// Notifier уведомляет владельцев отменённых бронирований
type Notifier interface {
	BookingsCancelled(ctx context.Context, bookings []*domain.Booking)
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
