package cancel_slots

import (
	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	cancelSlots "github.com/m04kA/SMC-GameBookingService/internal/usecase/cancel_slots"
)

// CancelSlotsRequest HTTP request model
type CancelSlotsRequest struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Reason string `json:"reason"`
}

// CancelSlotsResponse HTTP response model
type CancelSlotsResponse struct {
	GameID            int64  `json:"gameId"`
	Date              string `json:"date"`
	CancelledSlots    int64  `json:"cancelledSlots"`
	CancelledBookings int    `json:"cancelledBookings"`
}

func (r *CancelSlotsRequest) ToUseCaseRequest(caller domain.Caller, gameID int64) *cancelSlots.Request {
	return &cancelSlots.Request{
		Caller: caller,
		GameID: gameID,
		Date:   r.Date,
		Reason: r.Reason,
	}
}

func FromUseCaseResponse(resp *cancelSlots.Response) *CancelSlotsResponse {
	return &CancelSlotsResponse{
		GameID:            resp.GameID,
		Date:              resp.Date,
		CancelledSlots:    resp.CancelledSlots,
		CancelledBookings: resp.CancelledBookings,
	}
}
