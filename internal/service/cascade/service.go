package cascade

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// Result итог каскадной отмены
type Result struct {
	CancelledSlots    int64
	CancelledBookings []*domain.Booking
}

// Coordinator отменяет слоты вместе со всеми их активными бронированиями
type Coordinator struct {
	ledger      SlotLedger
	bookingRepo BookingRepository
	logger      Logger
}

// NewCoordinator создает новый экземпляр координатора каскадной отмены
func NewCoordinator(ledger SlotLedger, bookingRepo BookingRepository, logger Logger) *Coordinator {
	return &Coordinator{
		ledger:      ledger,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CancelSlots отменяет слоты и все pending/confirmed бронирования на них.
// Должен вызываться внутри транзакции: слоты и бронирования фиксируются вместе,
// иначе возможна пара "отменённый слот, активное бронирование".
func (c *Coordinator) CancelSlots(ctx context.Context, slotIDs []int64, reason string, now time.Time) (*Result, error) {
	if len(slotIDs) == 0 {
		return &Result{CancelledBookings: []*domain.Booking{}}, nil
	}

	cancelledSlots, err := c.ledger.Cancel(ctx, slotIDs, reason)
	if err != nil {
		return nil, fmt.Errorf("%w: cancel slots: %w", ErrInternal, err)
	}

	bookings, err := c.bookingRepo.CancelActiveBySlotIDs(ctx, slotIDs, reason, now)
	if err != nil {
		c.logger.Error("CancelSlots: failed to cancel bookings for %d slots: %v", len(slotIDs), err)
		return nil, fmt.Errorf("%w: cancel bookings: %w", ErrInternal, err)
	}

	c.logger.Info("CancelSlots: cancelled slots=%d bookings=%d reason=%q", cancelledSlots, len(bookings), reason)

	return &Result{
		CancelledSlots:    cancelledSlots,
		CancelledBookings: bookings,
	}, nil
}
