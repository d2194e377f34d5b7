package get_slot

import (
	"context"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

type SlotLedger interface {
	Get(ctx context.Context, slotID int64) (*domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
