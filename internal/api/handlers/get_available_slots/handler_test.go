package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-GameBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-GameBookingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailableSlots.Response)
	return resp, args.Error(1)
}

func TestHandle_OK(t *testing.T) {
	uc := &mockUseCase{}
	gameType := "table_tennis"
	start := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{Date: "2025-03-12", Type: &gameType}).
		Return(&getAvailableSlots.Response{
			Date: "2025-03-12",
			Slots: []getAvailableSlots.Slot{{
				ID: 1, GameID: 2, GameName: "Table 1", GameType: "table_tennis", MaxPlayers: 4,
				StartTime: start, EndTime: start.Add(30 * time.Minute),
			}},
		}, nil).Once()
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots/available?date=2025-03-12&type=table_tennis", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "2025-03-12T09:30:00Z", body.Slots[0].EndTime)
	uc.AssertExpectations(t)
}

func TestHandle_EmptyListIsArray(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{Date: "2025-03-12"}).
		Return(&getAvailableSlots.Response{Date: "2025-03-12"}, nil).Once()
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots/available?date=2025-03-12", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{getAvailableSlots.ErrInvalidDate, http.StatusBadRequest},
		{getAvailableSlots.ErrInvalidGameType, http.StatusBadRequest},
		{getAvailableSlots.ErrNonOperatingDay, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))
			rec := httptest.NewRecorder()

			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots/available?date=2025-03-15", nil))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_MissingDate(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots/available", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
