package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GameBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-GameBookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidGameType = "некорректный тип игры"
	msgNonOperatingDay = "в выходные дни слоты не предоставляются"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/available
// Query params: date (required, YYYY-MM-DD), type (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots/available - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ToUseCaseRequest(dateStr, query.Get("type")))
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /slots/available - Invalid date: %q", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidGameType):
			h.logger.Warn("GET /slots/available - Invalid game type: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGameType)

		case errors.Is(err, getAvailableSlots.ErrNonOperatingDay):
			h.logger.Warn("GET /slots/available - Non operating day: %s", dateStr)
			handlers.RespondUnprocessable(w, msgNonOperatingDay)

		default:
			h.logger.Error("GET /slots/available - Failed to get available slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/available - Found %d slots: date=%s", len(result.Slots), result.Date)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
