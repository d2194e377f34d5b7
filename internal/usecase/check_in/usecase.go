package check_in

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GameBookingService/pkg/clock"
	"github.com/m04kA/SMC-GameBookingService/pkg/txmanager"
)

// UseCase use case подтверждения прихода на бронирование
type UseCase struct {
	bookingRepo  BookingRepository
	ledger       SlotLedger
	txManager    TransactionManager
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ledger SlotLedger,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		txManager:    txManager,
		policy:       policy,
		timeProvider: clock.Real{},
		logger:       logger,
	}
}

// Execute переводит pending бронирование владельца в confirmed
// Окно check-in включает обе границы: [start - window, start + window]
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckIn: booking=%d, user=%d", req.BookingID, req.Caller.UserID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	var slotID int64

	// Слот бронирования. Чтение без блокировки: slot_id не меняется,
	// а строки блокируются в порядке слот -> бронирование
	current, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CheckIn: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CheckIn: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := uc.ledger.Get(txCtx, current.SlotID)
		if err != nil {
			uc.logger.Error("CheckIn: failed to get slot id=%d: %v", current.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}

		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CheckIn: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CheckIn: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// Отметиться может только сам владелец, администратор в том числе не может
		if err := domain.AuthorizeOwner(req.Caller, booking.UserID); err != nil {
			uc.logger.Warn("CheckIn: user=%d is not the owner of booking id=%d", req.Caller.UserID, booking.ID)
			return err
		}

		switch {
		case booking.IsCancelled():
			return ErrBookingCancelled
		case booking.CheckedIn || booking.Status == domain.StatusConfirmed:
			return ErrAlreadyCheckedIn
		case booking.IsCompleted():
			return ErrBookingCompleted
		}

		from, to := uc.policy.CheckInWindowFor(slot.StartTime)
		if now.Before(from) {
			uc.logger.Warn("CheckIn: booking id=%d too early, window opens at %s", booking.ID, from)
			return fmt.Errorf("%w: opens at %s", ErrTooEarly, from.Format("15:04"))
		}
		if now.After(to) {
			uc.logger.Warn("CheckIn: booking id=%d window closed at %s", booking.ID, to)
			return ErrWindowExpired
		}

		if err := uc.bookingRepo.Confirm(txCtx, booking.ID, now); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return ErrConcurrentUpdate
			}
			uc.logger.Error("CheckIn: failed to confirm booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to confirm booking: %w", ErrInternal, err)
		}

		slotID = slot.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CheckIn: booking id=%d: %v", req.BookingID, err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	uc.logger.Info("CheckIn: booking id=%d confirmed at %s", req.BookingID, now)

	return &Response{
		BookingID:   req.BookingID,
		SlotID:      slotID,
		Status:      string(domain.StatusConfirmed),
		CheckedIn:   true,
		CheckInTime: now,
	}, nil
}
