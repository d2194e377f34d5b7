package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/SMC-GameBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-GameBookingService/pkg/ptr"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse свободный слот
type SlotResponse struct {
	ID         int64  `json:"id"`
	GameID     int64  `json:"gameId"`
	GameName   string `json:"gameName"`
	GameType   string `json:"gameType"`
	MaxPlayers int    `json:"maxPlayers"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// ToUseCaseRequest формирует запрос к use case из query параметров
func ToUseCaseRequest(date, gameType string) *getAvailableSlots.Request {
	req := &getAvailableSlots.Request{Date: date}
	if gameType != "" {
		req.Type = ptr.Ptr(gameType)
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			ID:         s.ID,
			GameID:     s.GameID,
			GameName:   s.GameName,
			GameType:   s.GameType,
			MaxPlayers: s.MaxPlayers,
			StartTime:  s.StartTime.Format(time.RFC3339),
			EndTime:    s.EndTime.Format(time.RFC3339),
		}
	}

	return &AvailableSlotsResponse{
		Date:  resp.Date,
		Slots: slots,
	}
}
