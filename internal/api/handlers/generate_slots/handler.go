package generate_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GameBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GameBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	generateSlots "github.com/m04kA/SMC-GameBookingService/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "пользователь не аутентифицирован"
	msgForbidden          = "операция доступна только администратору"
	msgInvalidGameID      = "некорректный ID игры"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgGameNotFound       = "игра не найдена"
	msgNonOperatingDay    = "в выходные дни слоты не создаются"
	msgGameUnavailable    = "нельзя создавать слоты для неактивной игры"
	msgAlreadyGenerated   = "слоты на эту дату уже созданы"
	msgConcurrentUpdate   = "данные изменены параллельным запросом, повторите попытку"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(caller))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, generateSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidGameID)
		case errors.Is(err, generateSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, generateSlots.ErrGameNotFound):
			handlers.RespondNotFound(w, msgGameNotFound)
		case errors.Is(err, generateSlots.ErrNonOperatingDay):
			handlers.RespondUnprocessable(w, msgNonOperatingDay)
		case errors.Is(err, generateSlots.ErrGameUnavailable):
			handlers.RespondUnprocessable(w, msgGameUnavailable)
		case errors.Is(err, generateSlots.ErrSlotsAlreadyGenerated):
			handlers.RespondConflict(w, msgAlreadyGenerated)
		case errors.Is(err, generateSlots.ErrConcurrentUpdate):
			handlers.RespondConflict(w, msgConcurrentUpdate)
		default:
			h.logger.Error("POST /admin/slots/generate - Failed to generate slots: game_id=%d, date=%s, error=%v",
				req.GameID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/slots/generate - Generated %d/%d slots: game_id=%d, date=%s",
		result.Created, result.Total, result.GameID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
