package create_game

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GameBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GameBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	"github.com/m04kA/SMC-GameBookingService/internal/service/games"
	"github.com/m04kA/SMC-GameBookingService/internal/service/games/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "пользователь не аутентифицирован"
	msgDuplicateName      = "игра с таким названием уже существует"
	msgInvalidGame        = "некорректные данные игры"
	msgForbidden          = "операция доступна только администратору"
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

// Handle POST /api/v1/admin/games
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req models.CreateGameRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/games - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	game, err := h.service.Create(r.Context(), caller, &req)
	if err != nil {
		switch {
		case errors.Is(err, games.ErrDuplicateName):
			handlers.RespondConflict(w, msgDuplicateName)
		case errors.Is(err, games.ErrInvalidInput):
			h.logger.Warn("POST /admin/games - Invalid game: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGame)
		case errors.Is(err, domain.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("POST /admin/games - Failed to create game: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/games - Game created: game_id=%d, name=%q", game.ID, game.Name)
	handlers.RespondJSON(w, http.StatusCreated, game)
}
