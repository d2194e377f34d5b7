package domain

import "time"

// Slot represents a fixed-duration time window of one game
type Slot struct {
	ID                 int64
	GameID             int64
	StartTime          time.Time
	EndTime            time.Time
	IsAvailable        bool
	IsCancelled        bool
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsBookable returns true if a new booking can reserve the slot
func (s *Slot) IsBookable() bool {
	return s.IsAvailable && !s.IsCancelled
}

// SlotFilter фильтр для выборки слотов
type SlotFilter struct {
	GameIDs          []int64    // Пустой список - все игры
	From             *time.Time // start_time >= From
	To               *time.Time // start_time < To
	StartAfter       *time.Time // start_time > StartAfter
	OnlyAvailable    bool       // Только доступные и не отменённые
	IncludeCancelled bool       // Включать отменённые слоты
}
