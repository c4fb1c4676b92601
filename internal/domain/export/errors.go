package export

import "errors"

var (
	ErrUnknownProfile = errors.New("unknown export profile")
	ErrRunNotLocked   = errors.New("payroll run is not locked")
	ErrExportNotFound = errors.New("stored export file not found")
)
