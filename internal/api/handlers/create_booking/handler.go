package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GameBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GameBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-GameBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "пользователь не аутентифицирован"
	msgInvalidSlotID      = "некорректный ID слота"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "слот уже забронирован или отменён"
	msgConcurrentUpdate   = "слот бронируется другим пользователем, попробуйте ещё раз"
	msgSlotStarted        = "слот уже начался"
	msgGameUnavailable    = "игра сейчас недоступна"
	msgQuotaExceeded      = "превышен дневной лимит бронирований для этого типа игры"
	msgPartySizeExceeded  = "слишком много участников для этой игры"
	msgInvalidParticipant = "один или несколько участников не найдены"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing caller")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(caller))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, slot_id=%d: %v", caller.UserID, req.SlotID, err)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: user_id=%d, slot_id=%d", caller.UserID, req.SlotID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrConcurrentUpdate):
			h.logger.Warn("POST /bookings - Concurrent update: user_id=%d, slot_id=%d", caller.UserID, req.SlotID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, createBooking.ErrSlotStarted):
			handlers.RespondUnprocessable(w, msgSlotStarted)

		case errors.Is(err, createBooking.ErrGameUnavailable):
			handlers.RespondUnprocessable(w, msgGameUnavailable)

		case errors.Is(err, createBooking.ErrQuotaExceeded):
			h.logger.Warn("POST /bookings - Quota exceeded: user_id=%d", caller.UserID)
			handlers.RespondUnprocessable(w, msgQuotaExceeded)

		case errors.Is(err, createBooking.ErrPartySizeExceeded):
			handlers.RespondUnprocessable(w, msgPartySizeExceeded)

		case errors.Is(err, createBooking.ErrInvalidParticipant):
			handlers.RespondUnprocessable(w, msgInvalidParticipant)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, slot_id=%d, error=%v",
				caller.UserID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, slot_id=%d",
		result.ID, caller.UserID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
