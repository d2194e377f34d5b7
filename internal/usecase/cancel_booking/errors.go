package cancel_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: cancel_booking: booking not found", domain.ErrNotFound)

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = fmt.Errorf("%w: cancel_booking: booking is already cancelled", domain.ErrPolicyViolation)

	// ErrBookingCompleted возвращается для завершённого бронирования
	ErrBookingCompleted = fmt.Errorf("%w: cancel_booking: booking is completed", domain.ErrPolicyViolation)

	// ErrConcurrentUpdate возвращается, если статус изменился параллельно
	ErrConcurrentUpdate = fmt.Errorf("%w: cancel_booking: booking status changed concurrently", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: cancel_booking: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
