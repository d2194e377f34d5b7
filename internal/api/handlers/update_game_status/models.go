package update_game_status

import (
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	updateGameStatus "github.com/m04kA/SMC-GameBookingService/internal/usecase/update_game_status"
)

// UpdateGameStatusRequest HTTP request model
type UpdateGameStatusRequest struct {
	Status string `json:"status"`
}

// UpdateGameStatusResponse HTTP response model
type UpdateGameStatusResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Type              string `json:"type"`
	MaxPlayers        int    `json:"maxPlayers"`
	Status            string `json:"status"`
	UpdatedAt         string `json:"updatedAt"`
	CancelledSlots    int64  `json:"cancelledSlots"`
	CancelledBookings int    `json:"cancelledBookings"`
}

func (r *UpdateGameStatusRequest) ToUseCaseRequest(caller domain.Caller, gameID int64) *updateGameStatus.Request {
	return &updateGameStatus.Request{
		Caller: caller,
		GameID: gameID,
		Status: r.Status,
	}
}

func FromUseCaseResponse(resp *updateGameStatus.Response) *UpdateGameStatusResponse {
	return &UpdateGameStatusResponse{
		ID:                resp.GameID,
		Name:              resp.Name,
		Type:              resp.Type,
		MaxPlayers:        resp.MaxPlayers,
		Status:            resp.Status,
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
		CancelledSlots:    resp.CancelledSlots,
		CancelledBookings: resp.CancelledBookings,
	}
}
