package create_booking

import (
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Caller       domain.Caller // Аутентифицированный пользователь
	SlotID       int64         // ID слота
	OtherPlayers string        // Идентификаторы остальных участников через запятую (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64     // ID созданного бронирования
	UserID       int64     // ID пользователя
	SlotID       int64     // ID слота
	GameID       int64     // ID игры
	StartTime    time.Time // Начало слота
	EndTime      time.Time // Конец слота
	Status       string    // Статус бронирования (pending)
	OtherPlayers []string  // Остальные участники

	CheckInFrom time.Time // Начало окна check-in
	CheckInTo   time.Time // Конец окна check-in

	CreatedAt time.Time // Время создания
}
