package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("%w: create_booking: slot not found", domain.ErrNotFound)

	// ErrSlotUnavailable возвращается, когда слот уже занят или отменён
	ErrSlotUnavailable = fmt.Errorf("%w: create_booking: slot is not available", domain.ErrConflict)

	// ErrConcurrentUpdate возвращается, когда конкурентная транзакция не дала завершить бронирование
	ErrConcurrentUpdate = fmt.Errorf("%w: create_booking: concurrent update, try again", domain.ErrConflict)

	// ErrSlotStarted возвращается, когда окно check-in слота уже закрыто
	ErrSlotStarted = fmt.Errorf("%w: create_booking: slot has already started", domain.ErrPolicyViolation)

	// ErrGameUnavailable возвращается, когда игра не в статусе active
	ErrGameUnavailable = fmt.Errorf("%w: create_booking: game is not active", domain.ErrPolicyViolation)

	// ErrQuotaExceeded возвращается, когда достигнут дневной лимит бронирований на тип игры
	ErrQuotaExceeded = fmt.Errorf("%w: create_booking: daily booking limit for this game type reached", domain.ErrPolicyViolation)

	// ErrPartySizeExceeded возвращается, когда участников больше, чем вмещает игра
	ErrPartySizeExceeded = fmt.Errorf("%w: create_booking: too many players", domain.ErrPolicyViolation)

	// ErrInvalidParticipant возвращается, когда хотя бы один участник не найден или указан некорректно
	ErrInvalidParticipant = fmt.Errorf("%w: create_booking: invalid participant", domain.ErrPolicyViolation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
