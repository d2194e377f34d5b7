package create_booking

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

func (journalTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(context.WithValue(ctx, inTxKey{}, true))
}

type journalGames struct {
	j *journal
}

func (r journalGames) GetByID(ctx context.Context, id int64) (*domain.Game, error) {
	r.j.add(ctx, "game")
	return txGame, nil
}

type journalLedger struct {
	j *journal
}

func (l journalLedger) Get(ctx context.Context, slotID int64) (*domain.Slot, error) {
	l.j.add(ctx, "slot")
	return freeSlot, nil
}

func (l journalLedger) IsBookable(ctx context.Context, slotID int64) (bool, error) {
	l.j.add(ctx, "slot")
	return freeSlot.IsBookable(), nil
}

func (l journalLedger) Reserve(ctx context.Context, slotID int64) error {
	l.j.add(ctx, "slot.reserve")
	return nil
}

type journalBookings struct {
	j *journal
}

func (r journalBookings) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.j.add(ctx, "booking.create")
	booking.ID = 1
	return booking, nil
}

func (r journalBookings) CountByUserGameTypeAndPeriod(ctx context.Context, userID int64, gameType domain.GameType, from, to time.Time) (int, error) {
	r.j.add(ctx, "booking.count")
	return 0, nil
}

// Порядок блокировок совпадает со сменой статуса игры: игра, затем слот, затем бронирования
func TestExecute_LocksGameBeforeSlot(t *testing.T) {
	j := &journal{}
	uc := NewUseCase(journalBookings{j}, journalGames{j}, &mockUserRepo{}, journalLedger{j}, journalTx{},
		domain.DefaultBookingPolicy(), logger.NewWithWriter(io.Discard, "error"))
	uc.timeProvider = clock.NewManual(time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{Caller: caller(1), SlotID: txSlotID})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, []string{
		"slot",
		"game:locked",
		"slot:locked",
		"booking.count:locked",
		"slot.reserve:locked",
		"booking.create:locked",
	}, j.calls)
}
