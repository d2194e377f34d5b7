package availability

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	"github.com/m04kA/SMC-GameBookingService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-GameBookingService/pkg/logger"
)

func setup(t *testing.T) (*Ledger, *memstore.Store, []int64) {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	start := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	slots := []*domain.Slot{
		{GameID: 1, StartTime: start, EndTime: start.Add(30 * time.Minute), IsAvailable: true},
		{GameID: 1, StartTime: start.Add(30 * time.Minute), EndTime: start.Add(time.Hour), IsAvailable: true},
	}
	created, err := store.Slots().CreateBatch(ctx, slots)
	require.NoError(t, err)
	require.Equal(t, 2, created)

	all, err := store.Slots().List(ctx, domain.SlotFilter{GameIDs: []int64{1}})
	require.NoError(t, err)
	ids := make([]int64, 0, len(all))
	for _, sl := range all {
		ids = append(ids, sl.ID)
	}

	return NewLedger(store.Slots(), logger.NewWithWriter(io.Discard, "error")), store, ids
}

func TestLedger_Reserve(t *testing.T) {
	ledger, _, ids := setup(t)
	ctx := context.Background()

	require.NoError(t, ledger.Reserve(ctx, ids[0]))

	ok, err := ledger.IsBookable(ctx, ids[0])
	require.NoError(t, err)
	assert.False(t, ok)

	// Повторное резервирование
	err = ledger.Reserve(ctx, ids[0])
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.ErrorIs(t, err, domain.ErrConflict)

	ok, err = ledger.IsBookable(ctx, ids[1])
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLedger_Get_NotFound(t *testing.T) {
	ledger, _, _ := setup(t)

	_, err := ledger.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ok, err := ledger.IsBookable(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLedger_Release(t *testing.T) {
	ledger, _, ids := setup(t)
	ctx := context.Background()

	require.NoError(t, ledger.Reserve(ctx, ids[0]))

	released, err := ledger.Release(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, released)

	slot, err := ledger.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, slot.IsAvailable)
}

func TestLedger_Release_CancelledSlotStaysUnavailable(t *testing.T) {
	ledger, _, ids := setup(t)
	ctx := context.Background()

	_, err := ledger.Cancel(ctx, []int64{ids[0]}, domain.ReasonGameMaintenance)
	require.NoError(t, err)

	released, err := ledger.Release(ctx, ids[0])
	require.NoError(t, err)
	assert.False(t, released)

	slot, err := ledger.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.False(t, slot.IsAvailable)
	assert.True(t, slot.IsCancelled)

	err = ledger.Reserve(ctx, ids[0])
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestLedger_Cancel_Repeated(t *testing.T) {
	ledger, _, ids := setup(t)
	ctx := context.Background()

	n, err := ledger.Cancel(ctx, ids, domain.ReasonGameMaintenance)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Повторная отмена перезаписывает причину
	n, err = ledger.Cancel(ctx, ids, domain.ReasonAdminCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	slot, err := ledger.Get(ctx, ids[1])
	require.NoError(t, err)
	require.NotNil(t, slot.CancellationReason)
	assert.Equal(t, domain.ReasonAdminCancelled, *slot.CancellationReason)
}

func TestLedger_RepositoryError(t *testing.T) {
	ledger, store, ids := setup(t)
	ctx := context.Background()

	store.FailNext("slots.Reserve", errors.New("connection reset"))
	err := ledger.Reserve(ctx, ids[0])
	assert.ErrorIs(t, err, ErrInternal)

	store.FailNext("slots.GetByID", errors.New("connection reset"))
	_, err = ledger.IsBookable(ctx, ids[0])
	assert.ErrorIs(t, err, ErrInternal)
}
