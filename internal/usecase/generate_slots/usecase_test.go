package generate_slots

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	"github.com/m04kA/SMC-GameBookingService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-GameBookingService/pkg/logger"
)

var admin = domain.Caller{UserID: 100, Email: "admin@example.com", Role: domain.RoleAdmin}

func setup(t *testing.T, status domain.GameStatus) (*UseCase, *memstore.Store, *domain.Game) {
	t.Helper()

	store := memstore.New()
	game, err := store.Games().Create(context.Background(), &domain.Game{
		Name:       "Chess Board 1",
		Type:       domain.GameTypeChess,
		MaxPlayers: 2,
		Status:     status,
	})
	require.NoError(t, err)

	uc := NewUseCase(store.Games(), store.Slots(), store, domain.DefaultBookingPolicy(), logger.NewWithWriter(io.Discard, "error"))
	return uc, store, game
}

func TestExecute_GeneratesFullWeekdayGrid(t *testing.T) {
	uc, store, game := setup(t, domain.GameStatusActive)

	resp, err := uc.Execute(context.Background(), &Request{Caller: admin, GameID: game.ID, Date: "2025-03-12"})

	require.NoError(t, err)
	assert.Equal(t, 22, resp.Created)
	assert.Equal(t, 22, resp.Total)

	slots := store.AllSlots()
	require.Len(t, slots, 22)
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].EndTime, slots[i].StartTime)
		assert.True(t, slots[i].IsBookable())
	}
}

func TestExecute_RepeatedGenerationDoesNotDuplicate(t *testing.T) {
	uc, store, game := setup(t, domain.GameStatusActive)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{Caller: admin, GameID: game.ID, Date: "2025-03-12"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, &Request{Caller: admin, GameID: game.ID, Date: "2025-03-12"})

	assert.ErrorIs(t, err, ErrSlotsAlreadyGenerated)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, store.AllSlots(), 22)
}

func TestExecute_Weekend(t *testing.T) {
	uc, store, game := setup(t, domain.GameStatusActive)

	for _, date := range []string{"2025-03-15", "2025-03-16"} {
		_, err := uc.Execute(context.Background(), &Request{Caller: admin, GameID: game.ID, Date: date})
		assert.ErrorIs(t, err, ErrNonOperatingDay, date)
		assert.ErrorIs(t, err, domain.ErrPolicyViolation, date)
	}
	assert.Empty(t, store.AllSlots())
}

func TestExecute_Weekend_UnknownGameStillNonOperatingDay(t *testing.T) {
	uc, _, _ := setup(t, domain.GameStatusActive)

	_, err := uc.Execute(context.Background(), &Request{Caller: admin, GameID: 999, Date: "2025-03-15"})

	assert.ErrorIs(t, err, ErrNonOperatingDay)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.GameStatus
		caller  domain.Caller
		gameID  int64
		date    string
		wantErr error
	}{
		{
			name:    "not admin",
			status:  domain.GameStatusActive,
			caller:  domain.Caller{UserID: 1, Role: domain.RoleUser},
			gameID:  1,
			date:    "2025-03-12",
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "malformed date",
			status:  domain.GameStatusActive,
			caller:  admin,
			gameID:  1,
			date:    "12.03.2025",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "unknown game",
			status:  domain.GameStatusActive,
			caller:  admin,
			gameID:  42,
			date:    "2025-03-12",
			wantErr: ErrGameNotFound,
		},
		{
			name:    "inactive game",
			status:  domain.GameStatusInactive,
			caller:  admin,
			gameID:  1,
			date:    "2025-03-12",
			wantErr: ErrGameUnavailable,
		},
		{
			name:    "game under maintenance",
			status:  domain.GameStatusMaintenance,
			caller:  admin,
			gameID:  1,
			date:    "2025-03-12",
			wantErr: ErrGameUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store, _ := setup(t, tt.status)

			_, err := uc.Execute(context.Background(), &Request{Caller: tt.caller, GameID: tt.gameID, Date: tt.date})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.AllSlots())
		})
	}
}
