package cancel_slots

import (
	"context"

	cancelSlots "github.com/m04kA/SMC-GameBookingService/internal/usecase/cancel_slots"
)

type CancelSlotsUseCase interface {
	Execute(ctx context.Context, req *cancelSlots.Request) (*cancelSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
