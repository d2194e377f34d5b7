package cancel_booking

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	"github.com/m04kA/SMC-GameBookingService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-GameBookingService/internal/service/availability"
	"github.com/m04kA/SMC-GameBookingService/pkg/clock"
	"github.com/m04kA/SMC-GameBookingService/pkg/logger"
)

const ownerID int64 = 10

var now = time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) BookingCancelled(ctx context.Context, booking *domain.Booking) {
	m.Called(ctx, booking)
}

func setup(t *testing.T) (*UseCase, *memstore.Store, *mockNotifier, *domain.Booking) {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	game, err := store.Games().Create(ctx, &domain.Game{Name: "Fussball", Type: domain.GameTypeFussBall, MaxPlayers: 4, Status: domain.GameStatusActive})
	require.NoError(t, err)
	start := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	_, err = store.Slots().CreateBatch(ctx, []*domain.Slot{
		{GameID: game.ID, StartTime: start, EndTime: start.Add(30 * time.Minute), IsAvailable: false},
	})
	require.NoError(t, err)
	booking, err := store.Bookings().Create(ctx, &domain.Booking{UserID: ownerID, SlotID: 1, Status: domain.StatusConfirmed})
	require.NoError(t, err)

	log := logger.NewWithWriter(io.Discard, "error")
	notifier := &mockNotifier{}
	uc := NewUseCase(store.Bookings(), availability.NewLedger(store.Slots(), log), notifier, store, log)
	uc.timeProvider = clock.NewManual(now)
	return uc, store, notifier, booking
}

func TestExecute_OwnerCancels(t *testing.T) {
	uc, store, notifier, booking := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{Caller: domain.Caller{UserID: ownerID}, BookingID: booking.ID})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, domain.ReasonUserCancelled, resp.CancellationReason)
	assert.Equal(t, now, resp.CancelledAt)
	assert.True(t, resp.SlotReleased)

	assert.True(t, store.AllSlots()[0].IsAvailable)
	stored := store.AllBookings()[0]
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	require.NotNil(t, stored.CancelledAt)
	assert.Equal(t, now, *stored.CancelledAt)
	notifier.AssertNotCalled(t, "BookingCancelled", mock.Anything, mock.Anything)
}

func TestExecute_AdminCancelsAndOwnerIsNotified(t *testing.T) {
	uc, _, notifier, booking := setup(t)
	notifier.On("BookingCancelled", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.ID == booking.ID && b.UserID == ownerID && *b.CancellationReason == "Table is broken"
	})).Once()

	resp, err := uc.Execute(context.Background(), &Request{
		Caller:    domain.Caller{UserID: 1, Role: domain.RoleAdmin},
		BookingID: booking.ID,
		Reason:    "  Table is broken ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Table is broken", resp.CancellationReason)
	notifier.AssertExpectations(t)
}

func TestExecute_AdminDefaultReason(t *testing.T) {
	uc, _, notifier, booking := setup(t)
	notifier.On("BookingCancelled", mock.Anything, mock.Anything).Once()

	resp, err := uc.Execute(context.Background(), &Request{Caller: domain.Caller{UserID: 1, Role: domain.RoleAdmin}, BookingID: booking.ID})

	require.NoError(t, err)
	assert.Equal(t, domain.ReasonAdminCancelled, resp.CancellationReason)
}

func TestExecute_Forbidden(t *testing.T) {
	uc, store, _, booking := setup(t)

	_, err := uc.Execute(context.Background(), &Request{Caller: domain.Caller{UserID: 99}, BookingID: booking.ID})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.StatusConfirmed, store.AllBookings()[0].Status)
}

func TestExecute_AlreadyCancelledHasNoSideEffects(t *testing.T) {
	uc, store, _, booking := setup(t)
	ctx := context.Background()
	req := &Request{Caller: domain.Caller{UserID: ownerID}, BookingID: booking.ID}

	_, err := uc.Execute(ctx, req)
	require.NoError(t, err)
	// Слот снова занимает другой пользователь
	require.NoError(t, store.Slots().Reserve(ctx, 1))

	_, err = uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.ErrorIs(t, err, domain.ErrPolicyViolation)
	assert.False(t, store.AllSlots()[0].IsAvailable)
}

func TestExecute_CancelledSlotStaysUnavailable(t *testing.T) {
	uc, store, _, booking := setup(t)
	ctx := context.Background()
	_, err := store.Slots().Cancel(ctx, []int64{1}, domain.ReasonGameMaintenance)
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{Caller: domain.Caller{UserID: ownerID}, BookingID: booking.ID})

	require.NoError(t, err)
	assert.False(t, resp.SlotReleased)
	slot := store.AllSlots()[0]
	assert.False(t, slot.IsAvailable)
	assert.True(t, slot.IsCancelled)
}

func TestExecute_RollsBackWhenReleaseFails(t *testing.T) {
	uc, store, _, booking := setup(t)
	store.FailNext("slots.Release", errors.New("connection reset"))

	_, err := uc.Execute(context.Background(), &Request{Caller: domain.Caller{UserID: ownerID}, BookingID: booking.ID})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, domain.StatusConfirmed, store.AllBookings()[0].Status)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, _, booking := setup(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{Caller: domain.Caller{UserID: ownerID}, BookingID: 404})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	long := make([]byte, domain.MaxCancellationReasonLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = uc.Execute(ctx, &Request{Caller: domain.Caller{UserID: ownerID}, BookingID: booking.ID, Reason: string(long)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
