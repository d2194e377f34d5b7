package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	gameRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/game"
	"github.com/m04kA/SMC-GameBookingService/pkg/txmanager"
)

// UseCase use case для генерации дневной сетки слотов игры
type UseCase struct {
	gameRepo  GameRepository
	slotRepo  SlotRepository
	txManager TransactionManager
	policy    domain.BookingPolicy
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	gameRepo GameRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		gameRepo:  gameRepo,
		slotRepo:  slotRepo,
		txManager: txManager,
		policy:    policy,
		logger:    logger,
	}
}

// Execute генерирует слоты игры на дату
// Повторный вызов создаёт только недостающие слоты (уникальность game_id + start_time),
// если недостающих нет - возвращает ErrSlotsAlreadyGenerated
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: game=%d, date=%s, by user=%d", req.GameID, req.Date, req.Caller.UserID)

	if err := domain.AuthorizeAdmin(req.Caller); err != nil {
		uc.logger.Warn("GenerateSlots: user=%d is not an admin", req.Caller.UserID)
		return nil, err
	}

	if req.GameID <= 0 {
		return nil, fmt.Errorf("%w: gameID must be positive", ErrInvalidInput)
	}

	day, err := uc.policy.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GenerateSlots: invalid date=%q", req.Date)
		return nil, fmt.Errorf("%w: use %s", ErrInvalidDate, domain.DateFormat)
	}

	if !uc.policy.IsOperatingDay(day) {
		uc.logger.Warn("GenerateSlots: date=%s is a weekend", req.Date)
		return nil, ErrNonOperatingDay
	}

	grid := uc.policy.BuildGrid(req.GameID, day)
	var created int

	// Игра блокируется, чтобы её нельзя было деактивировать во время генерации
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		game, err := uc.gameRepo.GetByID(txCtx, req.GameID)
		if err != nil {
			if errors.Is(err, gameRepo.ErrGameNotFound) {
				uc.logger.Warn("GenerateSlots: game id=%d not found", req.GameID)
				return ErrGameNotFound
			}
			uc.logger.Error("GenerateSlots: failed to get game id=%d: %v", req.GameID, err)
			return fmt.Errorf("%w: failed to get game: %w", ErrInternal, err)
		}

		if !game.IsActive() {
			uc.logger.Warn("GenerateSlots: game id=%d is %s", game.ID, game.Status)
			return ErrGameUnavailable
		}

		created, err = uc.slotRepo.CreateBatch(txCtx, grid)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to insert slots: %v", err)
			return fmt.Errorf("%w: failed to insert slots: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("GenerateSlots: game id=%d: %v", req.GameID, err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	if created == 0 {
		uc.logger.Warn("GenerateSlots: grid for game=%d date=%s already exists", req.GameID, req.Date)
		return nil, ErrSlotsAlreadyGenerated
	}

	uc.logger.Info("GenerateSlots: created %d of %d slots for game=%d date=%s", created, len(grid), req.GameID, req.Date)

	return &Response{
		GameID:  req.GameID,
		Date:    day.Format(domain.DateFormat),
		Created: created,
		Total:   len(grid),
	}, nil
}
