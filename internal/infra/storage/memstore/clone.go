package memstore

import (
	"time"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

func cloneGame(g *domain.Game) *domain.Game {
	c := *g
	return &c
}

func cloneSlot(s *domain.Slot) *domain.Slot {
	c := *s
	c.CancellationReason = cloneString(s.CancellationReason)
	return &c
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.OtherPlayers != nil {
		c.OtherPlayers = append([]string(nil), b.OtherPlayers...)
	}
	c.CheckInTime = cloneTime(b.CheckInTime)
	c.CancellationReason = cloneString(b.CancellationReason)
	c.CancelledAt = cloneTime(b.CancelledAt)
	return &c
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
