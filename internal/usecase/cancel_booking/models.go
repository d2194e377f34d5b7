package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	Caller    domain.Caller
	BookingID int64
	Reason    string // Причина отмены (опционально)
}

// Response модель ответа после отмены
type Response struct {
	BookingID          int64
	SlotID             int64
	Status             string
	CancellationReason string
	CancelledAt        time.Time
	SlotReleased       bool // false, если слот сам отменён и остаётся недоступным
}
