package games

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	gameRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/game"
	"github.com/m04kA/SMC-GameBookingService/internal/service/games/models"
)

// Service сервис каталога игр
type Service struct {
	gameRepo GameRepository
	slotRepo SlotRepository
	policy   domain.BookingPolicy
	logger   Logger
}

// NewService создает новый экземпляр сервиса игр
func NewService(
	gameRepo GameRepository,
	slotRepo SlotRepository,
	policy domain.BookingPolicy,
	logger Logger,
) *Service {
	return &Service{
		gameRepo: gameRepo,
		slotRepo: slotRepo,
		policy:   policy,
		logger:   logger,
	}
}

// Create создает новую игру в статусе active
// Доступно только администраторам
func (s *Service) Create(ctx context.Context, caller domain.Caller, req *models.CreateGameRequest) (*models.GameResponse, error) {
	s.logger.Info("CreateGame: name=%q type=%s maxPlayers=%d by user=%d", req.Name, req.Type, req.MaxPlayers, caller.UserID)

	if err := domain.AuthorizeAdmin(caller); err != nil {
		s.logger.Warn("CreateGame: user=%d is not an admin", caller.UserID)
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxGameNameLength {
		return nil, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxGameNameLength)
	}

	gameType, err := domain.ParseGameType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.MaxPlayers < 1 || req.MaxPlayers > domain.MaxPlayersLimit {
		return nil, fmt.Errorf("%w: maxPlayers must be in 1..%d", ErrInvalidInput, domain.MaxPlayersLimit)
	}

	game, err := s.gameRepo.Create(ctx, &domain.Game{
		Name:       name,
		Type:       gameType,
		MaxPlayers: req.MaxPlayers,
		Status:     domain.GameStatusActive,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrDuplicateName) {
			s.logger.Warn("CreateGame: game name=%q already exists", name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("CreateGame: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateGame: successfully created game id=%d", game.ID)
	return models.FromDomainGame(game), nil
}

// List возвращает каталог игр, опционально по типу
func (s *Service) List(ctx context.Context, rawType *string) (*models.GameListResponse, error) {
	var gameType *domain.GameType
	if rawType != nil && *rawType != "" {
		t, err := domain.ParseGameType(*rawType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		gameType = &t
	}

	games, err := s.gameRepo.List(ctx, gameType)
	if err != nil {
		s.logger.Error("ListGames: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainGameList(games), nil
}

// GetSlotsByDate возвращает неотменённые слоты активной игры на рабочий день
func (s *Service) GetSlotsByDate(ctx context.Context, gameID int64, rawDate string) (*models.SlotListResponse, error) {
	day, err := s.policy.ParseDate(rawDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !s.policy.IsOperatingDay(day) {
		return nil, ErrNonOperatingDay
	}

	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		s.logger.Error("GetGameSlots: repository error for game id=%d: %v", gameID, err)
		return nil, fmt.Errorf("%w: GetSlotsByDate - repository error: %v", ErrInternal, err)
	}

	resp := &models.SlotListResponse{
		GameID: gameID,
		Date:   day.Format(domain.DateFormat),
		Slots:  []models.SlotResponse{},
	}

	// Слоты неактивной игры не показываются
	if !game.IsActive() {
		return resp, nil
	}

	from, to := s.policy.DayBounds(day)
	slots, err := s.slotRepo.List(ctx, domain.SlotFilter{
		GameIDs: []int64{gameID},
		From:    &from,
		To:      &to,
	})
	if err != nil {
		s.logger.Error("GetGameSlots: repository error for game id=%d: %v", gameID, err)
		return nil, fmt.Errorf("%w: GetSlotsByDate - repository error: %v", ErrInternal, err)
	}

	resp.Slots = make([]models.SlotResponse, 0, len(slots))
	for _, sl := range slots {
		resp.Slots = append(resp.Slots, models.FromDomainSlot(sl))
	}

	return resp, nil
}
