package payroll

import "errors"

var (
	ErrRunNotFound        = errors.New("payroll run not found")
	ErrInvalidPeriodRange = errors.New("invalid pay period range")
)
