package cancel_slots

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

func validateRequest(req *Request) (string, error) {
	if req.GameID <= 0 {
		return "", fmt.Errorf("%w: gameID must be positive", ErrInvalidInput)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return "", ErrReasonRequired
	}
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return "", fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return reason, nil
}
