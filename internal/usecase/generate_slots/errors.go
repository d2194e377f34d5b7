package generate_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

var (
	// ErrGameNotFound возвращается, когда игра не найдена
	ErrGameNotFound = fmt.Errorf("%w: generate_slots: game not found", domain.ErrNotFound)

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = fmt.Errorf("%w: generate_slots: invalid date", domain.ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: generate_slots: invalid input data", domain.ErrInvalidInput)

	// ErrNonOperatingDay возвращается для выходных дней
	ErrNonOperatingDay = fmt.Errorf("%w: generate_slots: cannot generate slots for weekends", domain.ErrPolicyViolation)

	// ErrGameUnavailable возвращается, когда игра не в статусе active
	ErrGameUnavailable = fmt.Errorf("%w: generate_slots: cannot generate slots for inactive game", domain.ErrPolicyViolation)

	// ErrSlotsAlreadyGenerated возвращается, когда вся сетка на дату уже существует
	ErrSlotsAlreadyGenerated = fmt.Errorf("%w: generate_slots: slots already generated", domain.ErrConflict)

	// ErrConcurrentUpdate возвращается, когда транзакция не прошла из-за параллельных изменений
	ErrConcurrentUpdate = fmt.Errorf("%w: generate_slots: concurrent update, try again", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
