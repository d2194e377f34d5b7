package update_game_status

import (
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// Request модель запроса на смену статуса игры
type Request struct {
	Caller domain.Caller
	GameID int64
	Status string
}

// Response модель ответа со сменённым статусом и итогом каскада
type Response struct {
	GameID            int64
	Name              string
	Type              string
	MaxPlayers        int
	Status            string
	UpdatedAt         time.Time
	CancelledSlots    int64
	CancelledBookings int
}
