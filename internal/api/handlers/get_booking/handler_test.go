package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GameBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	"github.com/m04kA/SMC-GameBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-GameBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-GameBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, caller domain.Caller, id int64) (*models.BookingResponse, error) {
	args := m.Called(ctx, caller, id)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

var caller = domain.Caller{UserID: 7, Role: domain.RoleUser}

func newRequest(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil)
	r = mux.SetURLVars(r, map[string]string{"bookingId": id})
	return r.WithContext(middleware.WithCaller(r.Context(), caller))
}

func TestHandle_OK(t *testing.T) {
	svc := &mockService{}
	svc.On("GetByID", mock.Anything, caller, int64(3)).
		Return(&models.BookingResponse{ID: 3, UserID: 7, Status: "pending", OtherPlayers: []string{}}, nil).Once()
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, "error"))
	rec := httptest.NewRecorder()

	h.Handle(rec, newRequest("3"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(3), body.ID)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", fmt.Errorf("%w: not owner", domain.ErrForbidden), http.StatusForbidden},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("GetByID", mock.Anything, caller, int64(3)).Return(nil, tt.err).Once()
			h := NewHandler(svc, logger.NewWithWriter(io.Discard, "error"))
			rec := httptest.NewRecorder()

			h.Handle(rec, newRequest("3"))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, "error"))

	for _, id := range []string{"abc", "0", "-1"} {
		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest(id))
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
	svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}
