package create_booking

import (
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-GameBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID       int64  `json:"slotId"`
	OtherPlayers string `json:"otherPlayers,omitempty"` // "u-bob,u-carol"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64    `json:"id"`
	UserID       int64    `json:"userId"`
	SlotID       int64    `json:"slotId"`
	GameID       int64    `json:"gameId"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	Status       string   `json:"status"`
	OtherPlayers []string `json:"otherPlayers"`
	CheckInFrom  string   `json:"checkInFrom"`
	CheckInTo    string   `json:"checkInTo"`
	CreatedAt    string   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(caller domain.Caller) *createBooking.Request {
	return &createBooking.Request{
		Caller:       caller,
		SlotID:       r.SlotID,
		OtherPlayers: r.OtherPlayers,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	others := resp.OtherPlayers
	if others == nil {
		others = []string{}
	}

	return &BookingResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		SlotID:       resp.SlotID,
		GameID:       resp.GameID,
		StartTime:    resp.StartTime.Format(time.RFC3339),
		EndTime:      resp.EndTime.Format(time.RFC3339),
		Status:       resp.Status,
		OtherPlayers: others,
		CheckInFrom:  resp.CheckInFrom.Format(time.RFC3339),
		CheckInTo:    resp.CheckInTo.Format(time.RFC3339),
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
