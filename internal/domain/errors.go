package domain

import "errors"

var (
	ErrMerchantNotFound = errors.New("merchant not found")
	ErrStatsNotFound    = errors.New("customer stats not found")
	ErrEmptyPeriod      = errors.New("period is empty")
	ErrInvalidGrouping  = errors.New("invalid grouping")
)
