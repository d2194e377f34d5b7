package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	Date string  // YYYY-MM-DD
	Type *string // Фильтр по типу игры (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  string // Дата, на которую запрашивались слоты
	Slots []Slot // Доступные слоты, упорядоченные по времени начала
}

// Slot модель свободного слота вместе с данными игры
type Slot struct {
	ID         int64
	GameID     int64
	GameName   string
	GameType   string
	MaxPlayers int
	StartTime  time.Time
	EndTime    time.Time
}
