package reclaim_bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	"github.com/m04kA/SMC-GameBookingService/pkg/clock"
)

// UseCase один проход освобождения неподтверждённых бронирований
type UseCase struct {
	bookingRepo  BookingRepository
	notifier     Notifier
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, notifier Notifier, policy domain.BookingPolicy, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		policy:       policy,
		timeProvider: clock.Real{},
		logger:       logger,
	}
}

// Execute отменяет pending бронирования без check-in, чей слот начинается не позже now + lead time.
// Отмена выполняется одним условным UPDATE, поэтому подтверждение, успевшее раньше, не затирается.
// Доступность слота не меняется. Возвращает количество отменённых бронирований
func (uc *UseCase) Execute(ctx context.Context) (int, error) {
	now := uc.timeProvider.Now()
	deadline := uc.policy.ReclaimDeadline(now)

	cancelled, err := uc.bookingRepo.CancelUnconfirmedStartingBefore(ctx, deadline, domain.ReasonNoCheckIn, now)
	if err != nil {
		uc.logger.Error("ReclaimBookings: failed to cancel unconfirmed bookings: %v", err)
		return 0, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if len(cancelled) == 0 {
		return 0, nil
	}

	for _, b := range cancelled {
		uc.logger.Info("ReclaimBookings: booking id=%d user=%d slot=%d cancelled, no check-in", b.ID, b.UserID, b.SlotID)
	}

	uc.notifier.BookingsCancelled(ctx, cancelled)

	return len(cancelled), nil
}
