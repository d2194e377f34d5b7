package check_in

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	"github.com/m04kA/SMC-GameBookingService/pkg/clock"
	"github.com/m04kA/SMC-GameBookingService/pkg/logger"
)

type inTxKey struct{}

// journal записывает обращения к строкам; внутри транзакции к имени добавляется ":locked"
type journal struct {
	calls []string
}

func (j *journal) add(ctx context.Context, name string) {
	if locked, _ := ctx.Value(inTxKey{}).(bool); locked {
		name += ":locked"
	}
	j.calls = append(j.calls, name)
}

type journalTx struct{}

func (journalTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(context.WithValue(ctx, inTxKey{}, true))
}

type journalBookings struct {
	j *journal
}

func (r journalBookings) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.j.add(ctx, "booking")
	return &domain.Booking{ID: id, UserID: 1, SlotID: 5, Status: domain.StatusPending}, nil
}

func (r journalBookings) Confirm(ctx context.Context, id int64, at time.Time) error {
	r.j.add(ctx, "booking.confirm")
	return nil
}

type journalLedger struct {
	j     *journal
	start time.Time
}

func (l journalLedger) Get(ctx context.Context, slotID int64) (*domain.Slot, error) {
	l.j.add(ctx, "slot")
	return &domain.Slot{ID: slotID, GameID: 1, StartTime: l.start, EndTime: l.start.Add(30 * time.Minute)}, nil
}

func TestExecute_LocksSlotBeforeBooking(t *testing.T) {
	j := &journal{}
	start := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	uc := NewUseCase(journalBookings{j}, journalLedger{j: j, start: start}, journalTx{},
		domain.DefaultBookingPolicy(), logger.NewWithWriter(io.Discard, "error"))
	uc.timeProvider = clock.NewManual(start)

	resp, err := uc.Execute(context.Background(), &Request{Caller: domain.Caller{UserID: 1, Role: domain.RoleUser}, BookingID: 9})

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.SlotID)
	assert.Equal(t, []string{"booking", "slot:locked", "booking:locked", "booking.confirm"}, j.calls)
}
