package create_booking

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
	slotRepo "github.com/m04kA/SMC-GameBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-GameBookingService/internal/service/availability"
	"github.com/m04kA/SMC-GameBookingService/pkg/clock"
	"github.com/m04kA/SMC-GameBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GameBookingService/pkg/logger"
	"github.com/m04kA/SMC-GameBookingService/pkg/txmanager"
)

// Транзакции поверх поддельного соединения: ошибки PostgreSQL приходят из репозиториев

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

type mockSlotRepo struct {
	mock.Mock
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	args := m.Called(ctx, id)
	slot, _ := args.Get(0).(*domain.Slot)
	return slot, args.Error(1)
}

func (m *mockSlotRepo) Reserve(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSlotRepo) Release(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockSlotRepo) Cancel(ctx context.Context, ids []int64, reason string) (int64, error) {
	args := m.Called(ctx, ids, reason)
	return args.Get(0).(int64), args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) GetByID(ctx context.Context, id int64) (*domain.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*domain.Game)
	return game, args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	created, _ := args.Get(0).(*domain.Booking)
	return created, args.Error(1)
}

func (m *mockBookingRepo) CountByUserGameTypeAndPeriod(ctx context.Context, userID int64, gameType domain.GameType, from, to time.Time) (int, error) {
	args := m.Called(ctx, userID, gameType, from, to)
	return args.Int(0), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CountByExternalIDs(ctx context.Context, externalIDs []string) (int, error) {
	args := m.Called(ctx, externalIDs)
	return args.Int(0), args.Error(1)
}

const txSlotID int64 = 5

var (
	txGame    = &domain.Game{ID: 1, Name: "Chess 1", Type: domain.GameTypeChess, MaxPlayers: 2, Status: domain.GameStatusActive}
	txStart   = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	freeSlot  = &domain.Slot{ID: txSlotID, GameID: 1, StartTime: txStart, EndTime: txStart.Add(30 * time.Minute), IsAvailable: true}
	takenSlot = &domain.Slot{ID: txSlotID, GameID: 1, StartTime: txStart, EndTime: txStart.Add(30 * time.Minute)}
)

func serializationFailure() error {
	return fmt.Errorf("%w: GetByID - scan slot: %w", slotRepo.ErrScanRow,
		&pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"})
}

func setupTx(slots *mockSlotRepo, games *mockGameRepo, bookings *mockBookingRepo) (*UseCase, *fakeDB) {
	db := &fakeDB{}
	log := logger.NewWithWriter(io.Discard, "error")
	uc := NewUseCase(
		bookings,
		games,
		&mockUserRepo{},
		availability.NewLedger(slots, log),
		txmanager.NewTransactionManager(db, txmanager.WithMaxAttempts(3)),
		domain.DefaultBookingPolicy(),
		log,
	)
	uc.timeProvider = clock.NewManual(time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC))
	return uc, db
}

// Проигравшая гонку транзакция повторяется и видит занятый слот
func TestExecute_SerializationFailureRetriedIntoConflict(t *testing.T) {
	slots := &mockSlotRepo{}
	games := &mockGameRepo{}
	bookings := &mockBookingRepo{}

	slots.On("GetByID", mock.Anything, txSlotID).Return(freeSlot, nil).Once()
	slots.On("GetByID", mock.Anything, txSlotID).Return(nil, serializationFailure()).Once()
	slots.On("GetByID", mock.Anything, txSlotID).Return(takenSlot, nil).Once()
	games.On("GetByID", mock.Anything, int64(1)).Return(txGame, nil)

	uc, db := setupTx(slots, games, bookings)

	_, err := uc.Execute(context.Background(), &Request{Caller: caller(1), SlotID: txSlotID})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, 2, db.begins)
	slots.AssertExpectations(t)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_SerializationFailuresExhausted(t *testing.T) {
	slots := &mockSlotRepo{}
	games := &mockGameRepo{}
	bookings := &mockBookingRepo{}

	slots.On("GetByID", mock.Anything, txSlotID).Return(freeSlot, nil).Once()
	slots.On("GetByID", mock.Anything, txSlotID).Return(nil, serializationFailure())
	games.On("GetByID", mock.Anything, int64(1)).Return(txGame, nil)

	uc, db := setupTx(slots, games, bookings)

	_, err := uc.Execute(context.Background(), &Request{Caller: caller(1), SlotID: txSlotID})

	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, db.begins)
}

func TestExecute_DeadlockOnGameRetried(t *testing.T) {
	slots := &mockSlotRepo{}
	games := &mockGameRepo{}
	bookings := &mockBookingRepo{}

	slots.On("GetByID", mock.Anything, txSlotID).Return(freeSlot, nil)
	slots.On("Reserve", mock.Anything, txSlotID).Return(nil).Once()
	games.On("GetByID", mock.Anything, int64(1)).Return(nil, fmt.Errorf("scan game: %w", &pq.Error{Code: "40P01"})).Once()
	games.On("GetByID", mock.Anything, int64(1)).Return(txGame, nil).Once()
	bookings.On("CountByUserGameTypeAndPeriod", mock.Anything, int64(1), domain.GameTypeChess, mock.Anything, mock.Anything).Return(0, nil).Once()
	bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 7, UserID: 1, SlotID: txSlotID, Status: domain.StatusPending}, nil).Once()

	uc, db := setupTx(slots, games, bookings)

	resp, err := uc.Execute(context.Background(), &Request{Caller: caller(1), SlotID: txSlotID})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, 2, db.begins)
	games.AssertExpectations(t)
	bookings.AssertExpectations(t)
}
