package update_game_status

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	"github.com/m04kA/SMC-GameBookingService/internal/service/cascade"
)

// GameRepository интерфейс репозитория игр
type GameRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Game, error)
	UpdateStatus(ctx context.Context, id int64, status domain.GameStatus) (*domain.Game, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
}

// CascadeCoordinator отменяет слоты вместе с их бронированиями
type CascadeCoordinator interface {
	CancelSlots(ctx context.Context, slotIDs []int64, reason string, now time.Time) (*cascade.Result, error)
}

// Notifier уведомляет владельцев отменённых бронирований
type Notifier interface {
	BookingsCancelled(ctx context.Context, bookings []*domain.Booking)
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
