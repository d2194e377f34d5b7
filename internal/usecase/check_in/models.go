package check_in

import (
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// Request модель запроса на check-in
type Request struct {
	Caller    domain.Caller
	BookingID int64
}

// Response модель ответа после check-in
type Response struct {
	BookingID   int64
	SlotID      int64
	Status      string
	CheckedIn   bool
	CheckInTime time.Time
}
