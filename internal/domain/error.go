package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound             = errors.New("entity not found")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrPastDue              = errors.New("booking due time is in the past")
	ErrJobAlreadyAccepted   = errors.New("job already accepted by another translator")
	ErrTranslatorBooked     = errors.New("translator already booked at this time")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrAdminCommentRequired = errors.New("admin comment required for this transition")
	ErrSessionTimeRequired  = errors.New("session time required for completion")
	ErrNoContactMode        = errors.New("job has neither phone nor physical mode enabled")
	ErrNotCustomer          = errors.New("only customers can create bookings")
	ErrCancelWindowClosed   = errors.New("cancellation window closed")
	ErrLockBusy             = errors.New("job is locked by another operation")
)
