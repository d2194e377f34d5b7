package notifications

import (
	"context"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// Sender отправляет уведомление получателю
// Ошибки доставки логируются внутри отправителя и не возвращаются
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
