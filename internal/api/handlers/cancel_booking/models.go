package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-GameBookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model, тело опционально
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID          int64  `json:"bookingId"`
	SlotID             int64  `json:"slotId"`
	Status             string `json:"status"`
	CancellationReason string `json:"cancellationReason"`
	CancelledAt        string `json:"cancelledAt"`
	SlotReleased       bool   `json:"slotReleased"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(caller domain.Caller, bookingID int64) *cancelBooking.Request {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &cancelBooking.Request{
		Caller:    caller,
		BookingID: bookingID,
		Reason:    reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:          resp.BookingID,
		SlotID:             resp.SlotID,
		Status:             resp.Status,
		CancellationReason: resp.CancellationReason,
		CancelledAt:        resp.CancelledAt.Format(time.RFC3339),
		SlotReleased:       resp.SlotReleased,
	}
}
