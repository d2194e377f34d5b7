package get_slot

import (
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// SlotResponse HTTP response model
type SlotResponse struct {
	ID                 int64   `json:"id"`
	GameID             int64   `json:"gameId"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	IsAvailable        bool    `json:"isAvailable"`
	IsCancelled        bool    `json:"isCancelled"`
	Bookable           bool    `json:"bookable"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// FromDomain конвертирует слот в HTTP response
func FromDomain(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:                 s.ID,
		GameID:             s.GameID,
		StartTime:          s.StartTime.Format(time.RFC3339),
		EndTime:            s.EndTime.Format(time.RFC3339),
		IsAvailable:        s.IsAvailable,
		IsCancelled:        s.IsCancelled,
		Bookable:           s.IsBookable(),
		CancellationReason: s.CancellationReason,
	}
}
