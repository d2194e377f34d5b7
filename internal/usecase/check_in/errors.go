package check_in

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: check_in: booking not found", domain.ErrNotFound)

	// ErrBookingCancelled возвращается при попытке check-in отменённого бронирования
	ErrBookingCancelled = fmt.Errorf("%w: check_in: booking is cancelled", domain.ErrPolicyViolation)

	// ErrAlreadyCheckedIn возвращается при повторном check-in
	ErrAlreadyCheckedIn = fmt.Errorf("%w: check_in: already checked in", domain.ErrPolicyViolation)

	// ErrBookingCompleted возвращается для завершённого бронирования
	ErrBookingCompleted = fmt.Errorf("%w: check_in: booking is completed", domain.ErrPolicyViolation)

	// ErrTooEarly возвращается, если окно check-in ещё не открылось
	ErrTooEarly = fmt.Errorf("%w: check_in: check-in window has not opened yet", domain.ErrPolicyViolation)

	// ErrWindowExpired возвращается, если окно check-in уже закрылось
	ErrWindowExpired = fmt.Errorf("%w: check_in: check-in window has expired", domain.ErrPolicyViolation)

	// ErrConcurrentUpdate возвращается, если статус изменился параллельно (например, сработал reclaimer)
	ErrConcurrentUpdate = fmt.Errorf("%w: check_in: booking status changed concurrently", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: check_in: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_in: internal error")
)
