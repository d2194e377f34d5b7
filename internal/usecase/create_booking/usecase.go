package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/booking"
	gameRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/game"
	"github.com/m04kA/SMC-GameBookingService/internal/service/availability"
	"github.com/m04kA/SMC-GameBookingService/pkg/clock"
	"github.com/m04kA/SMC-GameBookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	gameRepo     GameRepository
	userRepo     UserRepository
	ledger       SlotLedger
	txManager    TransactionManager
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	gameRepo GameRepository,
	userRepo UserRepository,
	ledger SlotLedger,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		gameRepo:     gameRepo,
		userRepo:     userRepo,
		ledger:       ledger,
		txManager:    txManager,
		policy:       policy,
		timeProvider: clock.Real{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Все проверки и запись выполняются в одной сериализуемой транзакции:
// строки игры и слота блокируются, доступность перепроверяется, квота считается по таблице бронирований,
// затем слот резервируется и создаётся бронирование в статусе pending
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, slot=%d, otherPlayers=%q", req.Caller.UserID, req.SlotID, req.OtherPlayers)

	// 1. Валидация входных данных
	participants, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Слот без блокировки: игра и время слота не меняются,
	// а строки блокируются в порядке игра -> слот -> бронирование
	slot, err := uc.ledger.Get(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, availability.ErrSlotNotFound) {
			uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
	}

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Игра (с блокировкой строки): тип, вместимость, статус
		game, err := uc.gameRepo.GetByID(txCtx, slot.GameID)
		if err != nil {
			if errors.Is(err, gameRepo.ErrGameNotFound) {
				return fmt.Errorf("%w: slot id=%d references missing game id=%d", ErrInternal, slot.ID, slot.GameID)
			}
			uc.logger.Error("CreateBooking: failed to get game id=%d: %v", slot.GameID, err)
			return fmt.Errorf("%w: failed to get game: %w", ErrInternal, err)
		}

		// 3.2. Доступность слота (с блокировкой строки)
		bookable, err := uc.ledger.IsBookable(txCtx, slot.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
		}
		if !bookable {
			uc.logger.Warn("CreateBooking: slot id=%d is not available", slot.ID)
			return ErrSlotUnavailable
		}

		if _, checkInTo := uc.policy.CheckInWindowFor(slot.StartTime); now.After(checkInTo) {
			uc.logger.Warn("CreateBooking: slot id=%d started at %s", slot.ID, slot.StartTime)
			return ErrSlotStarted
		}

		if !game.IsActive() {
			uc.logger.Warn("CreateBooking: game id=%d is %s", game.ID, game.Status)
			return ErrGameUnavailable
		}

		// 3.3. Дневная квота на тип игры
		dayStart, dayEnd := uc.policy.DayBounds(slot.StartTime)
		count, err := uc.bookingRepo.CountByUserGameTypeAndPeriod(txCtx, req.Caller.UserID, game.Type, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count bookings: %v", err)
			return fmt.Errorf("%w: failed to count bookings: %w", ErrInternal, err)
		}

		if count >= uc.policy.DailyQuotaPerType {
			uc.logger.Warn("CreateBooking: user=%d has %d %s bookings on %s",
				req.Caller.UserID, count, game.Type, dayStart.Format(domain.DateFormat))
			return fmt.Errorf("%w: maximum %d %s bookings per day", ErrQuotaExceeded, uc.policy.DailyQuotaPerType, game.Type)
		}

		// 3.4. Размер компании и участники (всё или ничего)
		if err := validatePartySize(game, participants); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return err
		}

		if len(participants) > 0 {
			known, err := uc.userRepo.CountByExternalIDs(txCtx, participants)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to resolve participants: %v", err)
				return fmt.Errorf("%w: failed to resolve participants: %w", ErrInternal, err)
			}
			if known != len(participants) {
				uc.logger.Warn("CreateBooking: %d of %d participants are unknown", len(participants)-known, len(participants))
				return fmt.Errorf("%w: one or more players not found", ErrInvalidParticipant)
			}
		}

		// 3.5. Резервируем слот и создаём бронирование
		if err := uc.ledger.Reserve(txCtx, slot.ID); err != nil {
			if errors.Is(err, availability.ErrSlotUnavailable) {
				return ErrSlotUnavailable
			}
			return fmt.Errorf("%w: failed to reserve slot: %w", ErrInternal, err)
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:       req.Caller.UserID,
			SlotID:       slot.ID,
			Status:       domain.StatusPending,
			OtherPlayers: participants,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotAlreadyBooked) {
				uc.logger.Warn("CreateBooking: slot id=%d already has an active booking", slot.ID)
				return ErrSlotUnavailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: lost race for slot id=%d: %v", req.SlotID, err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d for slot=%d", result.ID, result.SlotID)

	checkInFrom, checkInTo := uc.policy.CheckInWindowFor(slot.StartTime)

	// Конвертируем в response
	return &Response{
		ID:           result.ID,
		UserID:       result.UserID,
		SlotID:       result.SlotID,
		GameID:       slot.GameID,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Status:       string(result.Status),
		OtherPlayers: result.OtherPlayers,
		CheckInFrom:  checkInFrom,
		CheckInTo:    checkInTo,
		CreatedAt:    result.CreatedAt,
	}, nil
}
