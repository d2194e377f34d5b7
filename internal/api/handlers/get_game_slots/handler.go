package get_game_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GameBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GameBookingService/internal/service/games"
)

const (
	msgInvalidGameID   = "некорректный ID игры"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgGameNotFound    = "игра не найдена"
	msgNonOperatingDay = "в выходные дни слотов нет"
)

type Handler struct {
	service GameService
	logger  Logger
}

func NewHandler(service GameService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/games/{gameId}/slots?date=2025-03-12
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	gameID, err := handlers.PathID(r, "gameId")
	if err != nil {
		h.logger.Warn("GET /games/{id}/slots - Invalid game ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGameID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.service.GetSlotsByDate(r.Context(), gameID, date)
	if err != nil {
		switch {
		case errors.Is(err, games.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, games.ErrGameNotFound):
			handlers.RespondNotFound(w, msgGameNotFound)
		case errors.Is(err, games.ErrNonOperatingDay):
			handlers.RespondUnprocessable(w, msgNonOperatingDay)
		default:
			h.logger.Error("GET /games/{id}/slots - Failed to get slots: game_id=%d, date=%s, error=%v", gameID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
