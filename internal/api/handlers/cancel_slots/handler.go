package cancel_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GameBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GameBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	cancelSlots "github.com/m04kA/SMC-GameBookingService/internal/usecase/cancel_slots"
)

const (
	msgInvalidGameID      = "некорректный ID игры"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "пользователь не аутентифицирован"
	msgForbidden          = "операция доступна только администратору"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgReasonRequired     = "причина отмены обязательна"
	msgInvalidInput       = "некорректные данные запроса"
	msgGameNotFound       = "игра не найдена"
	msgConcurrentUpdate   = "данные изменены параллельным запросом, повторите попытку"
)

type Handler struct {
	useCase CancelSlotsUseCase
	logger  Logger
}

func NewHandler(useCase CancelSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/games/{gameId}/slots/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	gameID, err := handlers.PathID(r, "gameId")
	if err != nil {
		h.logger.Warn("POST /admin/games/{id}/slots/cancel - Invalid game ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGameID)
		return
	}

	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CancelSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/games/{id}/slots/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(caller, gameID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, cancelSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, cancelSlots.ErrReasonRequired):
			handlers.RespondBadRequest(w, msgReasonRequired)
		case errors.Is(err, cancelSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, cancelSlots.ErrGameNotFound):
			h.logger.Warn("POST /admin/games/{id}/slots/cancel - Game not found: game_id=%d", gameID)
			handlers.RespondNotFound(w, msgGameNotFound)
		case errors.Is(err, cancelSlots.ErrConcurrentUpdate):
			handlers.RespondConflict(w, msgConcurrentUpdate)
		default:
			h.logger.Error("POST /admin/games/{id}/slots/cancel - Failed to cancel slots: game_id=%d, date=%s, error=%v",
				gameID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/games/{id}/slots/cancel - Cancelled %d slots and %d bookings: game_id=%d, date=%s",
		result.CancelledSlots, result.CancelledBookings, gameID, result.Date)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
