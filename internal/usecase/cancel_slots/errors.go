package cancel_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

var (
	// ErrGameNotFound возвращается, когда игра не найдена
	ErrGameNotFound = fmt.Errorf("%w: cancel_slots: game not found", domain.ErrNotFound)

	// ErrInvalidDate возвращается при неверном формате даты
	ErrInvalidDate = fmt.Errorf("%w: cancel_slots: invalid date format", domain.ErrInvalidInput)

	// ErrReasonRequired возвращается, если причина отмены не указана
	ErrReasonRequired = fmt.Errorf("%w: cancel_slots: cancellation reason is required", domain.ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: cancel_slots: invalid input data", domain.ErrInvalidInput)

	// ErrConcurrentUpdate возвращается, когда транзакция не прошла из-за параллельных изменений
	ErrConcurrentUpdate = fmt.Errorf("%w: cancel_slots: concurrent update, try again", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_slots: internal error")
)
