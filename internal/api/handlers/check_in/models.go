package check_in

import (
	"time"

	checkIn "github.com/m04kA/SMC-GameBookingService/internal/usecase/check_in"
)

// CheckInResponse HTTP response model
type CheckInResponse struct {
	BookingID   int64  `json:"bookingId"`
	SlotID      int64  `json:"slotId"`
	Status      string `json:"status"`
	CheckedIn   bool   `json:"checkedIn"`
	CheckInTime string `json:"checkInTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkIn.Response) *CheckInResponse {
	return &CheckInResponse{
		BookingID:   resp.BookingID,
		SlotID:      resp.SlotID,
		Status:      resp.Status,
		CheckedIn:   resp.CheckedIn,
		CheckInTime: resp.CheckInTime.Format(time.RFC3339),
	}
}
