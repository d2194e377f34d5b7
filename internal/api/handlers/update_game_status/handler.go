package update_game_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GameBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GameBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	updateGameStatus "github.com/m04kA/SMC-GameBookingService/internal/usecase/update_game_status"
)

const (
	msgInvalidGameID      = "некорректный ID игры"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "пользователь не аутентифицирован"
	msgForbidden          = "операция доступна только администратору"
	msgInvalidStatus      = "некорректный статус, допустимо: active, inactive, maintenance"
	msgGameNotFound       = "игра не найдена"
	msgConcurrentUpdate   = "данные изменены параллельным запросом, повторите попытку"
)

type Handler struct {
	useCase UpdateGameStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateGameStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/games/{gameId}/status
// Перевод в inactive или maintenance отменяет будущие слоты игры и их бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	gameID, err := handlers.PathID(r, "gameId")
	if err != nil {
		h.logger.Warn("PUT /admin/games/{id}/status - Invalid game ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGameID)
		return
	}

	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req UpdateGameStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/games/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(caller, gameID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, updateGameStatus.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)
		case errors.Is(err, updateGameStatus.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidGameID)
		case errors.Is(err, updateGameStatus.ErrGameNotFound):
			h.logger.Warn("PUT /admin/games/{id}/status - Game not found: game_id=%d", gameID)
			handlers.RespondNotFound(w, msgGameNotFound)
		case errors.Is(err, updateGameStatus.ErrConcurrentUpdate):
			handlers.RespondConflict(w, msgConcurrentUpdate)
		default:
			h.logger.Error("PUT /admin/games/{id}/status - Failed to update status: game_id=%d, error=%v", gameID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/games/{id}/status - Status updated: game_id=%d, status=%s, cancelled_slots=%d, cancelled_bookings=%d",
		gameID, result.Status, result.CancelledSlots, result.CancelledBookings)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
