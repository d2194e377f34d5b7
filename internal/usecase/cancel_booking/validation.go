package cancel_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-GameBookingService/internal/domain"
)

// resolveReason возвращает причину отмены: указанную пользователем или причину по умолчанию
func resolveReason(req *Request) (string, error) {
	reason := strings.TrimSpace(req.Reason)
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return "", fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	if reason != "" {
		return reason, nil
	}
	if req.Caller.IsAdmin() {
		return domain.ReasonAdminCancelled, nil
	}
	return domain.ReasonUserCancelled, nil
}
