package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// WrapInvalid attaches a reason to ErrInvalidConfig.
func WrapInvalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, reason)
}

// WrapLoad attaches the underlying cause to ErrLoadConfig.
func WrapLoad(err error) error {
	return fmt.Errorf("%w: %w", ErrLoadConfig, err)
}
