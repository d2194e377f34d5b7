package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountByUserGameTypeAndPeriod(ctx context.Context, userID int64, gameType domain.GameType, from, to time.Time) (int, error)
}

// GameRepository интерфейс репозитория игр
type GameRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Game, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	CountByExternalIDs(ctx context.Context, externalIDs []string) (int, error)
}

// SlotLedger интерфейс реестра доступности слотов
type SlotLedger interface {
	Get(ctx context.Context, slotID int64) (*domain.Slot, error)
	IsBookable(ctx context.Context, slotID int64) (bool, error)
	Reserve(ctx context.Context, slotID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
