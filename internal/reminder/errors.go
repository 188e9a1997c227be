package reminder

import "errors"

var (
	// ErrReminderNotFound is returned when the referenced reminder does not exist
	ErrReminderNotFound = errors.New("reminder not found")

	// ErrAlreadySent is returned when marking a reminder sent that is already sent
	ErrAlreadySent = errors.New("reminder already sent")

	// ErrInvalidTitle is returned when a reminder is created without a title
	ErrInvalidTitle = errors.New("title is required")

	// ErrInvalidChannel is returned when an unknown channel value is supplied
	ErrInvalidChannel = errors.New("invalid reminder channel")

	// ErrInvalidLead is returned when the lead interval is negative
	ErrInvalidLead = errors.New("lead minutes must not be negative")
)
