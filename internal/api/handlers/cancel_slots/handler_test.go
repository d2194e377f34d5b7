package cancel_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GameBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	cancelSlots "github.com/m04kA/SMC-GameBookingService/internal/usecase/cancel_slots"
	"github.com/m04kA/SMC-GameBookingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *cancelSlots.Request) (*cancelSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*cancelSlots.Response)
	return resp, args.Error(1)
}

var admin = domain.Caller{UserID: 1, Role: domain.RoleAdmin}

func newRequest(id, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/games/"+id+"/slots/cancel", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"gameId": id})
	return r.WithContext(middleware.WithCaller(r.Context(), admin))
}

func TestHandle_OK(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &cancelSlots.Request{Caller: admin, GameID: 6, Date: "2025-03-12", Reason: "table repair"}).
		Return(&cancelSlots.Response{GameID: 6, Date: "2025-03-12", CancelledSlots: 22, CancelledBookings: 3}, nil).Once()
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))
	rec := httptest.NewRecorder()

	h.Handle(rec, newRequest("6", `{"date":"2025-03-12","reason":"table repair"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var body CancelSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(22), body.CancelledSlots)
	assert.Equal(t, 3, body.CancelledBookings)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: admin only", domain.ErrForbidden), http.StatusForbidden},
		{cancelSlots.ErrInvalidDate, http.StatusBadRequest},
		{cancelSlots.ErrReasonRequired, http.StatusBadRequest},
		{cancelSlots.ErrInvalidInput, http.StatusBadRequest},
		{cancelSlots.ErrGameNotFound, http.StatusNotFound},
		{cancelSlots.ErrConcurrentUpdate, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			h := NewHandler(uc, logger.NewWithWriter(io.Discard, "error"))
			rec := httptest.NewRecorder()

			h.Handle(rec, newRequest("6", `{"date":"2025-03-12","reason":"x"}`))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
