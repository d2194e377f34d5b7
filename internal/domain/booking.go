package domain

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ActiveStatuses statuses that hold a slot
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// ParseBookingStatus validates a raw booking status
func ParseBookingStatus(raw string) (BookingStatus, error) {
	switch s := BookingStatus(raw); s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return s, nil
	}
	return "", fmt.Errorf("%w: unknown booking status %q", ErrInvalidInput, raw)
}

// Booking represents a user's reservation of a slot
type Booking struct {
	ID           int64
	UserID       int64
	SlotID       int64
	Status       BookingStatus
	OtherPlayers []string // external identities of the other participants

	CheckedIn   bool
	CheckInTime *time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsCompleted returns true if the booking is completed
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// ParseParticipants splits a comma separated list of participant identities.
// Blank input means no participants. Empty or repeated entries are rejected.
func ParseParticipants(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ParticipantsSeparator)
	result := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, p := range parts {
		id := strings.TrimSpace(p)
		if id == "" {
			return nil, fmt.Errorf("%w: empty participant identity", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate participant %q", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result, nil
}

// JoinParticipants is the inverse of ParseParticipants
func JoinParticipants(ids []string) string {
	return strings.Join(ids, ParticipantsSeparator)
}
