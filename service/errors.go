package service

import "errors"

// Validation errors. The bot layer maps these to corrective replies;
// any other error is treated as a persistence failure and only logged.
var (
	// ErrInvalidBet indicates a non-positive bet amount
	ErrInvalidBet = errors.New("bet must be a positive number")

	// ErrInsufficientPoints indicates the bet exceeds the balance
	ErrInsufficientPoints = errors.New("not enough points for this bet")

	// ErrDailyNotReady indicates the daily claim window has not elapsed
	ErrDailyNotReady = errors.New("daily reward already claimed")

	// ErrMonthlyNotReady indicates the monthly claim window has not
	// elapsed
	ErrMonthlyNotReady = errors.New("monthly reward already claimed")
)
