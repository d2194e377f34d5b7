package list_games

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-GameBookingService/internal/service/games"
	"github.com/m04kA/SMC-GameBookingService/internal/service/games/models"
	"github.com/m04kA/SMC-GameBookingService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, gameType *string) (*models.GameListResponse, error) {
	args := m.Called(ctx, gameType)
	resp, _ := args.Get(0).(*models.GameListResponse)
	return resp, args.Error(1)
}

func TestHandle(t *testing.T) {
	chess := "chess"
	svc := &mockService{}
	svc.On("List", mock.Anything, &chess).
		Return(&models.GameListResponse{Games: []models.GameResponse{{ID: 1, Name: "Chess 1", Type: "chess"}}}, nil).Once()
	svc.On("List", mock.Anything, (*string)(nil)).
		Return(&models.GameListResponse{Games: []models.GameResponse{}}, nil).Once()
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, "error"))

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/games?type=chess", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chess 1")

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/games", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"games":[]`)

	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, mock.Anything).Return(nil, games.ErrInvalidInput).Once()
	svc.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, "error"))

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/games?type=golf", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/games", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
