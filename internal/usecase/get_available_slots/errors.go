package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = fmt.Errorf("%w: get_available_slots: invalid date", domain.ErrInvalidInput)

	// ErrInvalidGameType возвращается при неизвестном типе игры
	ErrInvalidGameType = fmt.Errorf("%w: get_available_slots: invalid game type", domain.ErrInvalidInput)

	// ErrNonOperatingDay возвращается для выходных дней
	ErrNonOperatingDay = fmt.Errorf("%w: get_available_slots: no slots on weekends", domain.ErrPolicyViolation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
