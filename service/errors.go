package service

import "errors"

var (
	ErrInvalidMortgage = errors.New("invalid mortgage")
	ErrBatchTooLarge   = errors.New("batch too large")
)
