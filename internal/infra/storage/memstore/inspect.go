package memstore

import (
	"sort"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// AllSlots возвращает копии всех слотов, упорядоченные по ID
func (s *Store) AllSlots() []*domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots := make([]*domain.Slot, 0, len(s.slots))
	for _, sl := range s.slots {
		slots = append(slots, cloneSlot(sl))
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })
	return slots
}

// AllBookings возвращает копии всех бронирований, упорядоченные по ID
func (s *Store) AllBookings() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings := make([]*domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		bookings = append(bookings, cloneBooking(b))
	}
	sortByID(bookings)
	return bookings
}

// OrphanedBookings возвращает активные бронирования на отменённых слотах
// В согласованном состоянии список всегда пуст
func (s *Store) OrphanedBookings() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	orphans := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if sl, ok := s.slots[b.SlotID]; ok && sl.IsCancelled && b.IsActive() {
			orphans = append(orphans, cloneBooking(b))
		}
	}
	sortByID(orphans)
	return orphans
}
