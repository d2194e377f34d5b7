package get_user_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

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

func (m *mockService) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.BookingListResponse)
	return resp, args.Error(1)
}

func newRequest(target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	return r.WithContext(middleware.WithCaller(r.Context(), domain.Caller{UserID: 4, Role: domain.RoleUser}))
}

func TestHandle_UsesCallerAndStatusFilter(t *testing.T) {
	svc := &mockService{}
	status := "confirmed"
	svc.On("GetUserBookings", mock.Anything, &models.GetUserBookingsRequest{UserID: 4, Status: &status}).
		Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1, UserID: 4, Status: status}}}, nil).Once()
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, "error"))
	rec := httptest.NewRecorder()

	h.Handle(rec, newRequest("/api/v1/users/me/bookings?status=confirmed"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Bookings, 1)
	assert.Equal(t, "confirmed", body.Bookings[0].Status)
	svc.AssertExpectations(t)
}

func TestHandle_NoFilter(t *testing.T) {
	svc := &mockService{}
	svc.On("GetUserBookings", mock.Anything, &models.GetUserBookingsRequest{UserID: 4}).
		Return(&models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil).Once()
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, "error"))
	rec := httptest.NewRecorder()

	h.Handle(rec, newRequest("/api/v1/users/me/bookings"))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	svc := &mockService{}
	svc.On("GetUserBookings", mock.Anything, mock.Anything).Return(nil, bookings.ErrInvalidInput).Once()
	svc.On("GetUserBookings", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, "error"))

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("/api/v1/users/me/bookings?status=weird"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest("/api/v1/users/me/bookings"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/me/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
