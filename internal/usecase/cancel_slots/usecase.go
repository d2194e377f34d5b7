package cancel_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	gameRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/game"
	"github.com/m04kA/SMC-GameBookingService/pkg/clock"
	"github.com/m04kA/SMC-GameBookingService/pkg/txmanager"
)

// UseCase use case отмены всех слотов игры на дату
type UseCase struct {
	gameRepo     GameRepository
	slotRepo     SlotRepository
	cascade      CascadeCoordinator
	notifier     Notifier
	txManager    TransactionManager
	policy       domain.BookingPolicy
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
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		gameRepo:     gameRepo,
		slotRepo:     slotRepo,
		cascade:      cascade,
		notifier:     notifier,
		txManager:    txManager,
		policy:       policy,
		timeProvider: clock.Real{},
		logger:       logger,
	}
}

// Execute отменяет все слоты игры за календарный день с указанной причиной
// Уже отменённые слоты получают новую причину. Отсутствие слотов на дату не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelSlots: game=%d, date=%s, by user=%d", req.GameID, req.Date, req.Caller.UserID)

	if err := domain.AuthorizeAdmin(req.Caller); err != nil {
		uc.logger.Warn("CancelSlots: user=%d is not an admin", req.Caller.UserID)
		return nil, err
	}

	reason, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CancelSlots: validation failed: %v", err)
		return nil, err
	}

	day, err := uc.policy.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("CancelSlots: invalid date=%q", req.Date)
		return nil, fmt.Errorf("%w: use %s", ErrInvalidDate, domain.DateFormat)
	}
	from, to := uc.policy.DayBounds(day)
	now := uc.timeProvider.Now()

	var result = &Response{GameID: req.GameID, Date: req.Date}
	var cancelled []*domain.Booking

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := uc.gameRepo.GetByID(txCtx, req.GameID); err != nil {
			if errors.Is(err, gameRepo.ErrGameNotFound) {
				uc.logger.Warn("CancelSlots: game id=%d not found", req.GameID)
				return ErrGameNotFound
			}
			uc.logger.Error("CancelSlots: failed to get game id=%d: %v", req.GameID, err)
			return fmt.Errorf("%w: failed to get game: %w", ErrInternal, err)
		}

		slots, err := uc.slotRepo.List(txCtx, domain.SlotFilter{
			GameIDs:          []int64{req.GameID},
			From:             &from,
			To:               &to,
			IncludeCancelled: true,
		})
		if err != nil {
			uc.logger.Error("CancelSlots: failed to list slots: %v", err)
			return fmt.Errorf("%w: failed to list slots: %w", ErrInternal, err)
		}

		ids := make([]int64, 0, len(slots))
		for _, s := range slots {
			ids = append(ids, s.ID)
		}

		res, err := uc.cascade.CancelSlots(txCtx, ids, reason, now)
		if err != nil {
			return fmt.Errorf("%w: cascade failed: %w", ErrInternal, err)
		}
		result.CancelledSlots = res.CancelledSlots
		cancelled = res.CancelledBookings

		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CancelSlots: game id=%d: %v", req.GameID, err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}
	result.CancelledBookings = len(cancelled)

	uc.logger.Info("CancelSlots: game id=%d date=%s cancelled slots=%d bookings=%d",
		req.GameID, req.Date, result.CancelledSlots, result.CancelledBookings)

	uc.notifier.BookingsCancelled(ctx, cancelled)

	return result, nil
}
