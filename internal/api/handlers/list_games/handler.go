package list_games

import (
	"net/http"

	"github.com/m04kA/SMC-GameBookingService/internal/api/handlers"
)

const (
	msgInvalidGameType = "некорректный тип игры"
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

// Handle GET /api/v1/games?type=chess
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var gameType *string
	if t := r.URL.Query().Get("type"); t != "" {
		gameType = &t
	}

	result, err := h.service.List(r.Context(), gameType)
	if err != nil {
		// Сервис возвращает только ErrInvalidInput для неизвестного типа
		if handlers.StatusFromError(err) == http.StatusInternalServerError {
			h.logger.Error("GET /games - Failed to list games: %v", err)
		}
		handlers.RespondDomainError(w, err, msgInvalidGameType)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
