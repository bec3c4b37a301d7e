package prescription

import "errors"

var (
	ErrPrescriptionNotFound    = errors.New("prescription not found")
	ErrInvalidStatusTransition = errors.New("invalid prescription status transition")
	ErrInvalidStatus           = errors.New("invalid prescription status")
)
