package generate_slots

import (
	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	generateSlots "github.com/m04kA/SMC-GameBookingService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	GameID int64  `json:"gameId"`
	Date   string `json:"date"` // YYYY-MM-DD
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	GameID  int64  `json:"gameId"`
	Date    string `json:"date"`
	Created int    `json:"created"`
	Total   int    `json:"total"`
}

func (r *GenerateSlotsRequest) ToUseCaseRequest(caller domain.Caller) *generateSlots.Request {
	return &generateSlots.Request{
		Caller: caller,
		GameID: r.GameID,
		Date:   r.Date,
	}
}

func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		GameID:  resp.GameID,
		Date:    resp.Date,
		Created: resp.Created,
		Total:   resp.Total,
	}
}
