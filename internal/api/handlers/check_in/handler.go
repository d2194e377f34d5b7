package check_in

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GameBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GameBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GameBookingService/internal/domain"
	checkIn "github.com/m04kA/SMC-GameBookingService/internal/usecase/check_in"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUser      = "пользователь не аутентифицирован"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "отметиться может только владелец бронирования"
	msgBookingCancelled = "бронирование отменено"
	msgAlreadyCheckedIn = "вы уже отметились"
	msgBookingCompleted = "бронирование уже завершено"
	msgTooEarly         = "окно check-in ещё не открылось"
	msgWindowExpired    = "окно check-in уже закрылось"
	msgConcurrentUpdate = "статус бронирования изменился, обновите данные"
)

type Handler struct {
	useCase CheckInUseCase
	logger  Logger
}

func NewHandler(useCase CheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/check-in - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/check-in - Missing caller")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkIn.Request{Caller: caller, BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, checkIn.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, checkIn.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/check-in - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrForbidden):
			h.logger.Warn("POST /bookings/{id}/check-in - Access denied: booking_id=%d, user_id=%d", bookingID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkIn.ErrBookingCancelled):
			handlers.RespondUnprocessable(w, msgBookingCancelled)

		case errors.Is(err, checkIn.ErrAlreadyCheckedIn):
			handlers.RespondUnprocessable(w, msgAlreadyCheckedIn)

		case errors.Is(err, checkIn.ErrBookingCompleted):
			handlers.RespondUnprocessable(w, msgBookingCompleted)

		case errors.Is(err, checkIn.ErrTooEarly):
			h.logger.Warn("POST /bookings/{id}/check-in - Too early: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgTooEarly)

		case errors.Is(err, checkIn.ErrWindowExpired):
			h.logger.Warn("POST /bookings/{id}/check-in - Window expired: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgWindowExpired)

		case errors.Is(err, checkIn.ErrConcurrentUpdate):
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /bookings/{id}/check-in - Failed to check in: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/check-in - Checked in: booking_id=%d, user_id=%d", bookingID, caller.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
