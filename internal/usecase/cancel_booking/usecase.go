package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GameBookingService/pkg/clock"
	"github.com/m04kA/SMC-GameBookingService/pkg/txmanager"
)

// UseCase use case отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	ledger       SlotLedger
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ledger SlotLedger,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ledger:       ledger,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: clock.Real{},
		logger:       logger,
	}
}

// Execute отменяет бронирование и возвращает слот в доступные
// Отменённый слот остаётся недоступным
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d, role=%s", req.BookingID, req.Caller.UserID, req.Caller.Role)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	reason, err := resolveReason(req)
	if err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		booking  *domain.Booking
		released bool
	)

	// Слот бронирования. Чтение без блокировки: slot_id не меняется,
	// а строки блокируются в порядке слот -> бронирование
	current, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := uc.ledger.Get(txCtx, current.SlotID); err != nil {
			uc.logger.Error("CancelBooking: failed to lock slot id=%d: %v", current.SlotID, err)
			return fmt.Errorf("%w: failed to lock slot: %w", ErrInternal, err)
		}

		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if err := domain.AuthorizeOwnerOrAdmin(req.Caller, booking.UserID); err != nil {
			uc.logger.Warn("CancelBooking: user=%d may not cancel booking id=%d", req.Caller.UserID, booking.ID)
			return err
		}

		if booking.IsCancelled() {
			return ErrAlreadyCancelled
		}
		if booking.IsCompleted() {
			return ErrBookingCompleted
		}

		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, reason, now); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return ErrConcurrentUpdate
			}
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %w", ErrInternal, err)
		}

		released, err = uc.ledger.Release(txCtx, booking.SlotID)
		if err != nil {
			return fmt.Errorf("%w: failed to release slot: %w", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		booking.CancellationReason = &reason
		booking.CancelledAt = &now
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CancelBooking: booking id=%d: %v", req.BookingID, err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled, slot=%d released=%t", booking.ID, booking.SlotID, released)

	// Владельца уведомляем, только если бронирование отменил не он сам
	if req.Caller.UserID != booking.UserID {
		uc.notifier.BookingCancelled(ctx, booking)
	}

	return &Response{
		BookingID:          booking.ID,
		SlotID:             booking.SlotID,
		Status:             string(booking.Status),
		CancellationReason: reason,
		CancelledAt:        now,
		SlotReleased:       released,
	}, nil
}
