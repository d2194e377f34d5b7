package games

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

var (
	// ErrGameNotFound возвращается, когда игра не найдена
	ErrGameNotFound = fmt.Errorf("%w: game not found", domain.ErrNotFound)

	// ErrDuplicateName возвращается, когда игра с таким названием уже существует
	ErrDuplicateName = fmt.Errorf("%w: game name already exists", domain.ErrConflict)

	// ErrNonOperatingDay возвращается для выходных дней
	ErrNonOperatingDay = fmt.Errorf("%w: no slots on weekends", domain.ErrPolicyViolation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: games", domain.ErrInvalidInput)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("games: internal error")
)
