package apperrors

import "errors"

// Business-rule outcomes. Controllers match these with errors.Is and map
// them to HTTP statuses; anything else is treated as an infrastructure
// failure and surfaced as a generic 500.
var (
	ErrInvalidFormat      = errors.New("invalid Iranian phone number format")
	ErrAlreadyExists      = errors.New("user with this phone number already exists")
	ErrWeakPassword       = errors.New("password must be at least 8 characters long")
	ErrRateLimited        = errors.New("please wait before requesting another code")
	ErrAlreadyVerified    = errors.New("phone number already verified")
	ErrInvalidOrExpired   = errors.New("invalid or expired verification code")
	ErrTooManyAttempts    = errors.New("too many failed attempts, request a new code")
	ErrInvalidCredentials = errors.New("invalid phone number or password")
	ErrSamePassword       = errors.New("new password must be different from the old password")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrPhoneNotVerified   = errors.New("phone number not verified")

	ErrPastSchedule        = errors.New("match must be scheduled in the future")
	ErrInvalidNTRPRange    = errors.New("NTRP min must be less than or equal to NTRP max")
	ErrNotJoinable         = errors.New("this match is not available to join")
	ErrSelfJoin            = errors.New("you cannot join your own match")
	ErrRatingTooLow        = errors.New("your NTRP rating is below the minimum required")
	ErrRatingTooHigh       = errors.New("your NTRP rating is above the maximum allowed")
	ErrNotOpponent         = errors.New("you are not the opponent in this match")
	ErrInvalidState        = errors.New("match is not in a valid state for this operation")
	ErrDuplicateInvitation = errors.New("user already has a pending invitation to this match")

	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
)
