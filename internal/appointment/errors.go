package appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the referenced appointment does not exist
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidStatus is returned when an unknown status value is supplied
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidPaymentMethod is returned when an unknown payment method is supplied
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)
