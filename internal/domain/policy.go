package domain

import (
	"errors"
	"fmt"
	"time"
)

// BookingPolicy holds the business rules of the slot grid and booking lifecycle
type BookingPolicy struct {
	OpenAt            time.Duration // offset of the first slot from midnight
	CloseAt           time.Duration // offset of the end of the last slot from midnight
	SlotDuration      time.Duration
	DailyQuotaPerType int
	CheckInWindow     time.Duration // accepted distance from slot start, both directions
	ReclaimLeadTime   time.Duration // pending bookings starting within this lead are reclaimed
	Location          *time.Location
}

// DefaultBookingPolicy returns 09:00-20:00 grid of 30 minute slots in UTC
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		OpenAt:            DefaultOpenHour * time.Hour,
		CloseAt:           DefaultCloseHour * time.Hour,
		SlotDuration:      DefaultSlotDuration,
		DailyQuotaPerType: DefaultDailyQuotaPerType,
		CheckInWindow:     DefaultCheckInWindow,
		ReclaimLeadTime:   DefaultReclaimLeadTime,
		Location:          time.UTC,
	}
}

// Validate checks the policy is usable
func (p BookingPolicy) Validate() error {
	if p.SlotDuration <= 0 {
		return errors.New("slot duration must be positive")
	}
	if p.OpenAt < 0 || p.CloseAt > 24*time.Hour || p.OpenAt >= p.CloseAt {
		return fmt.Errorf("invalid operating window %s-%s", p.OpenAt, p.CloseAt)
	}
	if (p.CloseAt-p.OpenAt)%p.SlotDuration != 0 {
		return fmt.Errorf("operating window is not a multiple of slot duration %s", p.SlotDuration)
	}
	if p.DailyQuotaPerType < 1 {
		return errors.New("daily quota must be at least 1")
	}
	if p.CheckInWindow < 0 || p.ReclaimLeadTime < 0 {
		return errors.New("check-in window and reclaim lead time must not be negative")
	}
	if p.Location == nil {
		return errors.New("location is required")
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date in the policy time zone
func (p BookingPolicy) ParseDate(raw string) (time.Time, error) {
	day, err := time.ParseInLocation(DateFormat, raw, p.location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in %s format: %q", ErrInvalidInput, DateFormat, raw)
	}
	return day, nil
}

// IsOperatingDay returns false for Saturday and Sunday
func (p BookingPolicy) IsOperatingDay(day time.Time) bool {
	switch day.In(p.location()).Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return true
}

// DayBounds returns [midnight, next midnight) of the calendar day containing t
func (p BookingPolicy) DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(p.location())
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.location())
	return start, start.AddDate(0, 0, 1)
}

// OperatingWindow returns [open, close) of the calendar day containing t
func (p BookingPolicy) OperatingWindow(t time.Time) (time.Time, time.Time) {
	local := t.In(p.location())
	y, m, d := local.Date()
	open := time.Date(y, m, d, 0, int(p.OpenAt/time.Minute), 0, 0, p.location())
	closing := time.Date(y, m, d, 0, int(p.CloseAt/time.Minute), 0, 0, p.location())
	return open, closing
}

// BuildGrid produces contiguous slots covering the operating window of day
func (p BookingPolicy) BuildGrid(gameID int64, day time.Time) []*Slot {
	open, closing := p.OperatingWindow(day)

	slots := make([]*Slot, 0, int(closing.Sub(open)/p.SlotDuration))
	for start := open; start.Before(closing); start = start.Add(p.SlotDuration) {
		slots = append(slots, &Slot{
			GameID:      gameID,
			StartTime:   start,
			EndTime:     start.Add(p.SlotDuration),
			IsAvailable: true,
		})
	}
	return slots
}

// CheckInWindowFor returns the inclusive check-in window around a slot start
func (p BookingPolicy) CheckInWindowFor(start time.Time) (time.Time, time.Time) {
	return start.Add(-p.CheckInWindow), start.Add(p.CheckInWindow)
}

// ReclaimDeadline returns the latest slot start whose pending bookings are reclaimed at now
func (p BookingPolicy) ReclaimDeadline(now time.Time) time.Time {
	return now.Add(p.ReclaimLeadTime)
}

func (p BookingPolicy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}
