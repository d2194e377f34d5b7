package update_game_status

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

var (
	// ErrGameNotFound возвращается, когда игра не найдена
	ErrGameNotFound = fmt.Errorf("%w: update_game_status: game not found", domain.ErrNotFound)

	// ErrInvalidStatus возвращается для неизвестного статуса
	ErrInvalidStatus = fmt.Errorf("%w: update_game_status: invalid status, must be one of: active, inactive, maintenance", domain.ErrInvalidInput)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: update_game_status: invalid input data", domain.ErrInvalidInput)

	// ErrConcurrentUpdate возвращается, когда транзакция не прошла из-за параллельных изменений
	ErrConcurrentUpdate = fmt.Errorf("%w: update_game_status: concurrent update, try again", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_game_status: internal error")
)
