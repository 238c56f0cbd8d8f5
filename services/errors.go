package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	ErrValidationFailed = errors.New("validation failed")

	// Registration and login
	ErrMissingFields      = errors.New("all required fields must be provided")
	ErrUnderage           = errors.New("you must be at least 18 years old to register")
	ErrRestrictedState    = errors.New("users from this state are not permitted to participate due to government compliance requirements")
	ErrUserExists         = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("authentication required")

	// Contests and teams
	ErrContestNotFound       = errors.New("contest not found")
	ErrContestFull           = errors.New("contest is full")
	ErrContestNotOpen        = errors.New("contest is not open for entries")
	ErrAlreadyJoined         = errors.New("you have already joined this contest")
	ErrRosterSize            = errors.New("team must have exactly 11 players")
	ErrCaptainRequired       = errors.New("captain and vice captain must be selected")
	ErrCaptainNotInTeam      = errors.New("captain and vice captain must be part of the team")
	ErrCaptainDuplicate      = errors.New("captain and vice captain must be different players")
	ErrDuplicatePlayer       = errors.New("team contains duplicate players")
	ErrCreditLimitExceeded   = errors.New("total credits cannot exceed 100")
	ErrContestFieldsRequired = errors.New("required contest fields missing")

	// Miscellaneous
	ErrUserNotFound       = errors.New("user not found")
	ErrContactFieldsEmpty = errors.New("name, email, subject and message are required")
	ErrEmailRequired      = errors.New("a valid email address is required")
	ErrAlreadySubscribed  = errors.New("email is already subscribed")
	ErrAvatarTooLarge     = errors.New("avatar exceeds the maximum upload size")
	ErrAvatarUnsupported  = errors.New("unsupported avatar image type")
	ErrUploadsDisabled    = errors.New("file uploads are not configured")
)
