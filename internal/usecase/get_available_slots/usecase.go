package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	"github.com/m04kA/SMC-GameBookingService/pkg/clock"
)

// UseCase use case для получения доступных для бронирования слотов
type UseCase struct {
	gameRepo     GameRepository
	slotRepo     SlotRepository
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	gameRepo GameRepository,
	slotRepo SlotRepository,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		gameRepo:     gameRepo,
		slotRepo:     slotRepo,
		policy:       policy,
		timeProvider: clock.Real{},
		logger:       logger,
	}
}

// Execute возвращает свободные слоты активных игр в рабочем окне дня
// Уже начавшиеся слоты не возвращаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, type=%v", req.Date, req.Type)

	// 1. Валидация даты
	day, err := uc.policy.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date=%q", req.Date)
		return nil, fmt.Errorf("%w: use %s", ErrInvalidDate, domain.DateFormat)
	}

	if !uc.policy.IsOperatingDay(day) {
		uc.logger.Warn("GetAvailableSlots: date=%s is a weekend", req.Date)
		return nil, ErrNonOperatingDay
	}

	// 2. Фильтр по типу игры
	var gameType *domain.GameType
	if req.Type != nil && *req.Type != "" {
		t, err := domain.ParseGameType(*req.Type)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: invalid type=%q", *req.Type)
			return nil, fmt.Errorf("%w: %q", ErrInvalidGameType, *req.Type)
		}
		gameType = &t
	}

	resp := &Response{
		Date:  day.Format(domain.DateFormat),
		Slots: make([]Slot, 0),
	}

	// 3. Только активные игры
	games, err := uc.gameRepo.List(ctx, gameType)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list games: %v", err)
		return nil, fmt.Errorf("%w: failed to list games: %w", ErrInternal, err)
	}

	activeGames := make(map[int64]*domain.Game, len(games))
	gameIDs := make([]int64, 0, len(games))
	for _, g := range games {
		if g.IsActive() {
			activeGames[g.ID] = g
			gameIDs = append(gameIDs, g.ID)
		}
	}

	if len(gameIDs) == 0 {
		return resp, nil
	}

	// 4. Свободные слоты в рабочем окне дня
	open, closing := uc.policy.OperatingWindow(day)
	now := uc.timeProvider.Now()

	slots, err := uc.slotRepo.List(ctx, domain.SlotFilter{
		GameIDs:       gameIDs,
		From:          &open,
		To:            &closing,
		StartAfter:    &now,
		OnlyAvailable: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %w", ErrInternal, err)
	}

	for _, s := range slots {
		game := activeGames[s.GameID]
		resp.Slots = append(resp.Slots, Slot{
			ID:         s.ID,
			GameID:     s.GameID,
			GameName:   game.Name,
			GameType:   string(game.Type),
			MaxPlayers: game.MaxPlayers,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
		})
	}

	uc.logger.Info("GetAvailableSlots: found %d available slots for date=%s", len(resp.Slots), resp.Date)
	return resp, nil
}
