package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса и разбирает список участников
func validateRequest(req *Request) ([]string, error) {
	if req.Caller.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	participants, err := domain.ParseParticipants(req.OtherPlayers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParticipant, err)
	}

	return participants, nil
}

// validatePartySize проверяет, что участники помещаются в игру вместе с владельцем
func validatePartySize(game *domain.Game, participants []string) error {
	if len(participants) > game.MaxOtherPlayers() {
		return fmt.Errorf("%w: maximum %d other players allowed for %s",
			ErrPartySizeExceeded, game.MaxOtherPlayers(), game.Type)
	}
	return nil
}
