package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("%w: availability: slot not found", domain.ErrNotFound)

	// ErrSlotUnavailable возвращается, когда слот уже занят или отменён
	ErrSlotUnavailable = fmt.Errorf("%w: availability: slot is not available", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
