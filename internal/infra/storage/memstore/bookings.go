package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/booking"
)

// BookingRepository in-memory аналог booking.Repository
type BookingRepository struct {
	s *Store
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("bookings.Create"); err != nil {
		return nil, err
	}

	// Аналог частичного уникального индекса bookings_one_active_per_slot
	if booking.IsActive() {
		for _, b := range r.s.bookings {
			if b.SlotID == booking.SlotID && b.IsActive() {
				return nil, bookingRepo.ErrSlotAlreadyBooked
			}
		}
	}

	r.s.nextBookingID++
	now := time.Now().UTC()
	booking.ID = r.s.nextBookingID
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.s.bookings[booking.ID] = cloneBooking(booking)

	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("bookings.GetByID"); err != nil {
		return nil, err
	}

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("bookings.GetByUserID"); err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		bookings = append(bookings, cloneBooking(b))
	}
	// Идентификаторы монотонны, поэтому порядок по id совпадает с created_at DESC
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID > bookings[j].ID })

	return bookings, nil
}

func (r *BookingRepository) CountByUserGameTypeAndPeriod(
	ctx context.Context,
	userID int64,
	gameType domain.GameType,
	from, to time.Time,
) (int, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("bookings.CountByUserGameTypeAndPeriod"); err != nil {
		return 0, err
	}

	count := 0
	for _, b := range r.s.bookings {
		if b.UserID != userID || b.Status == domain.StatusCancelled {
			continue
		}
		sl, ok := r.s.slots[b.SlotID]
		if !ok || sl.StartTime.Before(from) || !sl.StartTime.Before(to) {
			continue
		}
		g, ok := r.s.games[sl.GameID]
		if !ok || g.Type != gameType {
			continue
		}
		count++
	}

	return count, nil
}

func (r *BookingRepository) Confirm(ctx context.Context, id int64, at time.Time) error {
	defer r.s.lock(ctx)()
	if err := r.s.injected("bookings.Confirm"); err != nil {
		return err
	}

	b, ok := r.s.bookings[id]
	if !ok || b.Status != domain.StatusPending {
		return bookingRepo.ErrStatusChanged
	}
	b.Status = domain.StatusConfirmed
	b.CheckedIn = true
	b.CheckInTime = cloneTime(&at)
	b.UpdatedAt = at

	return nil
}

func (r *BookingRepository) Cancel(ctx context.Context, id int64, reason string, at time.Time) error {
	defer r.s.lock(ctx)()
	if err := r.s.injected("bookings.Cancel"); err != nil {
		return err
	}

	b, ok := r.s.bookings[id]
	if !ok || !b.IsActive() {
		return bookingRepo.ErrStatusChanged
	}
	cancelBooking(b, reason, at)

	return nil
}

func (r *BookingRepository) CancelActiveBySlotIDs(ctx context.Context, slotIDs []int64, reason string, at time.Time) ([]*domain.Booking, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("bookings.CancelActiveBySlotIDs"); err != nil {
		return nil, err
	}

	ids := make(map[int64]struct{}, len(slotIDs))
	for _, id := range slotIDs {
		ids[id] = struct{}{}
	}

	cancelled := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if _, ok := ids[b.SlotID]; !ok || !b.IsActive() {
			continue
		}
		cancelBooking(b, reason, at)
		cancelled = append(cancelled, cloneBooking(b))
	}
	sortByID(cancelled)

	return cancelled, nil
}

func (r *BookingRepository) CancelUnconfirmedStartingBefore(ctx context.Context, deadline time.Time, reason string, at time.Time) ([]*domain.Booking, error) {
	defer r.s.lock(ctx)()
	if err := r.s.injected("bookings.CancelUnconfirmedStartingBefore"); err != nil {
		return nil, err
	}

	cancelled := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.Status != domain.StatusPending || b.CheckedIn {
			continue
		}
		sl, ok := r.s.slots[b.SlotID]
		if !ok || sl.StartTime.After(deadline) {
			continue
		}
		cancelBooking(b, reason, at)
		cancelled = append(cancelled, cloneBooking(b))
	}
	sortByID(cancelled)

	return cancelled, nil
}

func cancelBooking(b *domain.Booking, reason string, at time.Time) {
	b.Status = domain.StatusCancelled
	b.CancellationReason = cloneString(&reason)
	b.CancelledAt = cloneTime(&at)
	b.UpdatedAt = at
}

func sortByID(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
}
