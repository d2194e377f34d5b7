package cancel_slots

import "github.com/m04kA/SMC-GameBookingService/internal/domain"

// Request модель запроса на отмену всех слотов игры за день
type Request struct {
	Caller domain.Caller
	GameID int64
	Date   string // YYYY-MM-DD
	Reason string
}

// Response модель ответа с итогом отмены
type Response struct {
	GameID            int64
	Date              string
	CancelledSlots    int64
	CancelledBookings int
}
