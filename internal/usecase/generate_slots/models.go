package generate_slots

import "github.com/m04kA/SMC-GameBookingService/internal/domain"

// Request модель запроса на генерацию слотов
type Request struct {
	Caller domain.Caller
	GameID int64
	Date   string // YYYY-MM-DD
}

// Response модель ответа
type Response struct {
	GameID  int64
	Date    string
	Created int // Количество созданных слотов
	Total   int // Размер дневной сетки
}
