package domain

import "time"

// Default booking policy values
const (
	DefaultOpenHour          = 9
	DefaultCloseHour         = 20
	DefaultSlotDuration      = 30 * time.Minute
	DefaultDailyQuotaPerType = 2
	DefaultCheckInWindow     = 5 * time.Minute
	DefaultReclaimLeadTime   = 5 * time.Minute
)

// Business validation constants
const (
	MaxGameNameLength           = 100
	MaxCancellationReasonLength = 500
	MaxPlayersLimit             = 22
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ParticipantsSeparator separates identities in a participant list
const ParticipantsSeparator = ","

// Cancellation reasons set by the system
const (
	ReasonGameUnavailable = "Game temporarily unavailable"
	ReasonGameMaintenance = "Game under maintenance"
	ReasonNoCheckIn       = "No check-in within 5 minutes of start time"
	ReasonUserCancelled   = "Cancelled by user"
	ReasonAdminCancelled  = "Cancelled by admin"
)
