package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrStorage              = errors.New("storage error")
	ErrNotFound             = errors.New("not found")
	ErrRefundFailed         = errors.New("refund failed, please contact support")
)

// InsufficientBalanceError reports the balance that was found too low.
type InsufficientBalanceError struct {
	Balance   float64
	Requested float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %f, need %f", e.Balance, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// ProviderError carries the provider's message verbatim; it often explains
// what to change (minimum quantity, bad link and so on).
type ProviderError struct {
	Message    string
	StatusCode int
}

func (e *ProviderError) Error() string {
	return "provider error: " + e.Message
}

func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func InvalidConfiguration(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func Storage(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
