package update_game_status

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	"github.com/m04kA/SMC-GameBookingService/internal/service/cascade"
	"github.com/m04kA/SMC-GameBookingService/pkg/clock"
	"github.com/m04kA/SMC-GameBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GameBookingService/pkg/logger"
	"github.com/m04kA/SMC-GameBookingService/pkg/txmanager"
)

type fakeTx struct{}

func (fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}
func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeDB struct {
	begins int
}

func (d *fakeDB) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	d.begins++
	return fakeTx{}, nil
}

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) GetByID(ctx context.Context, id int64) (*domain.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*domain.Game)
	return game, args.Error(1)
}

func (m *mockGameRepo) UpdateStatus(ctx context.Context, id int64, status domain.GameStatus) (*domain.Game, error) {
	args := m.Called(ctx, id, status)
	game, _ := args.Get(0).(*domain.Game)
	return game, args.Error(1)
}

type mockSlotRepo struct {
	mock.Mock
}

func (m *mockSlotRepo) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	args := m.Called(ctx, filter)
	slots, _ := args.Get(0).([]*domain.Slot)
	return slots, args.Error(1)
}

type mockCascade struct {
	mock.Mock
}

func (m *mockCascade) CancelSlots(ctx context.Context, slotIDs []int64, reason string, at time.Time) (*cascade.Result, error) {
	args := m.Called(ctx, slotIDs, reason, at)
	result, _ := args.Get(0).(*cascade.Result)
	return result, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) BookingsCancelled(ctx context.Context, bookings []*domain.Booking) {
	m.Called(ctx, bookings)
}

var (
	chessGame   = &domain.Game{ID: 1, Name: "Chess 1", Type: domain.GameTypeChess, MaxPlayers: 2, Status: domain.GameStatusActive}
	pausedGame  = &domain.Game{ID: 1, Name: "Chess 1", Type: domain.GameTypeChess, MaxPlayers: 2, Status: domain.GameStatusMaintenance}
	futureSlots = []*domain.Slot{{ID: 10, GameID: 1}, {ID: 11, GameID: 1}}
)

func deadlock() error {
	return fmt.Errorf("%w: cancel bookings: %w", cascade.ErrInternal, &pq.Error{Code: "40P01", Message: "deadlock detected"})
}

func setupTx(cascader *mockCascade, notifier *mockNotifier) (*UseCase, *fakeDB, *mockGameRepo) {
	db := &fakeDB{}
	games := &mockGameRepo{}
	slots := &mockSlotRepo{}
	games.On("GetByID", mock.Anything, int64(1)).Return(chessGame, nil)
	games.On("UpdateStatus", mock.Anything, int64(1), domain.GameStatusMaintenance).Return(pausedGame, nil)
	slots.On("List", mock.Anything, mock.Anything).Return(futureSlots, nil)

	log := logger.NewWithWriter(io.Discard, "error")
	uc := NewUseCase(games, slots, cascader, notifier, txmanager.NewTransactionManager(db, txmanager.WithMaxAttempts(2)), log)
	uc.timeProvider = clock.NewManual(now)
	return uc, db, games
}

func TestExecute_DeadlockInCascadeRetried(t *testing.T) {
	cascader := &mockCascade{}
	notifier := &mockNotifier{}
	cancelled := []*domain.Booking{{ID: 3, UserID: 7, SlotID: 10, Status: domain.StatusCancelled}}

	cascader.On("CancelSlots", mock.Anything, []int64{10, 11}, domain.ReasonGameMaintenance, now).Return(nil, deadlock()).Once()
	cascader.On("CancelSlots", mock.Anything, []int64{10, 11}, domain.ReasonGameMaintenance, now).
		Return(&cascade.Result{CancelledSlots: 2, CancelledBookings: cancelled}, nil).Once()
	notifier.On("BookingsCancelled", mock.Anything, cancelled).Once()

	uc, db, games := setupTx(cascader, notifier)

	resp, err := uc.Execute(context.Background(), &Request{Caller: admin, GameID: 1, Status: "maintenance"})

	require.NoError(t, err)
	assert.Equal(t, "maintenance", resp.Status)
	assert.Equal(t, int64(2), resp.CancelledSlots)
	assert.Equal(t, 1, resp.CancelledBookings)
	assert.Equal(t, 2, db.begins)
	games.AssertNumberOfCalls(t, "UpdateStatus", 2)
	cascader.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestExecute_DeadlocksExhaustedIsConflict(t *testing.T) {
	cascader := &mockCascade{}
	notifier := &mockNotifier{}
	cascader.On("CancelSlots", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, deadlock())

	uc, db, _ := setupTx(cascader, notifier)

	_, err := uc.Execute(context.Background(), &Request{Caller: admin, GameID: 1, Status: "maintenance"})

	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, 2, db.begins)
	notifier.AssertNotCalled(t, "BookingsCancelled", mock.Anything, mock.Anything)
}
