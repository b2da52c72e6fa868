package audit

import "errors"

var (
	ErrEntryNotFound      = errors.New("audit entry not found")
	ErrActionRequired     = errors.New("audit action is required")
	ErrDescriptionMissing = errors.New("audit description is required")
)
