package update_game_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	gameRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/game"
	"github.com/m04kA/SMC-GameBookingService/pkg/clock"
	"github.com/m04kA/SMC-GameBookingService/pkg/txmanager"
)

// UseCase use case смены статуса игры с каскадной отменой будущих слотов
type UseCase struct {
	gameRepo     GameRepository
	slotRepo     SlotRepository
	cascade      CascadeCoordinator
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	gameRepo GameRepository,
	slotRepo SlotRepository,
	cascade CascadeCoordinator,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		gameRepo:     gameRepo,
		slotRepo:     slotRepo,
		cascade:      cascade,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: clock.Real{},
		logger:       logger,
	}
}

// Execute меняет статус игры
// При переходе в inactive или maintenance все будущие неотменённые слоты отменяются
// вместе с бронированиями в той же транзакции, владельцы уведомляются после коммита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateGameStatus: game=%d, status=%q, by user=%d", req.GameID, req.Status, req.Caller.UserID)

	if err := domain.AuthorizeAdmin(req.Caller); err != nil {
		uc.logger.Warn("UpdateGameStatus: user=%d is not an admin", req.Caller.UserID)
		return nil, err
	}

	if req.GameID <= 0 {
		return nil, fmt.Errorf("%w: gameID must be positive", ErrInvalidInput)
	}

	status, err := domain.ParseGameStatus(req.Status)
	if err != nil {
		uc.logger.Warn("UpdateGameStatus: invalid status=%q", req.Status)
		return nil, ErrInvalidStatus
	}

	now := uc.timeProvider.Now()

	var (
		updated        *domain.Game
		cancelledSlots int64
		cancelled      []*domain.Booking
	)

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Блокируем строку игры: параллельные бронирования увидят новый статус
		if _, err := uc.gameRepo.GetByID(txCtx, req.GameID); err != nil {
			if errors.Is(err, gameRepo.ErrGameNotFound) {
				uc.logger.Warn("UpdateGameStatus: game id=%d not found", req.GameID)
				return ErrGameNotFound
			}
			uc.logger.Error("UpdateGameStatus: failed to get game id=%d: %v", req.GameID, err)
			return fmt.Errorf("%w: failed to get game: %w", ErrInternal, err)
		}

		var err error
		updated, err = uc.gameRepo.UpdateStatus(txCtx, req.GameID, status)
		if err != nil {
			uc.logger.Error("UpdateGameStatus: failed to update game id=%d: %v", req.GameID, err)
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		reason, ok := status.CascadeReason()
		if !ok {
			return nil
		}

		slots, err := uc.slotRepo.List(txCtx, domain.SlotFilter{
			GameIDs:    []int64{req.GameID},
			StartAfter: &now,
		})
		if err != nil {
			uc.logger.Error("UpdateGameStatus: failed to list future slots of game id=%d: %v", req.GameID, err)
			return fmt.Errorf("%w: failed to list slots: %w", ErrInternal, err)
		}

		ids := make([]int64, 0, len(slots))
		for _, s := range slots {
			ids = append(ids, s.ID)
		}

		result, err := uc.cascade.CancelSlots(txCtx, ids, reason, now)
		if err != nil {
			return fmt.Errorf("%w: cascade failed: %w", ErrInternal, err)
		}
		cancelledSlots = result.CancelledSlots
		cancelled = result.CancelledBookings

		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("UpdateGameStatus: game id=%d: %v", req.GameID, err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	uc.logger.Info("UpdateGameStatus: game id=%d is now %s, cancelled slots=%d bookings=%d",
		updated.ID, updated.Status, cancelledSlots, len(cancelled))

	uc.notifier.BookingsCancelled(ctx, cancelled)

	return &Response{
		GameID:            updated.ID,
		Name:              updated.Name,
		Type:              string(updated.Type),
		MaxPlayers:        updated.MaxPlayers,
		Status:            string(updated.Status),
		UpdatedAt:         updated.UpdatedAt,
		CancelledSlots:    cancelledSlots,
		CancelledBookings: len(cancelled),
	}, nil
}
