package classify

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownStage = errors.New("unknown capture stage")
	ErrBadImage     = errors.New("image payload could not be decoded")
	ErrCancelled    = errors.New("classification cancelled")
)

// WrapBadImage attaches the decode failure cause to ErrBadImage.
func WrapBadImage(err error) error {
	return fmt.Errorf("%w: %w", ErrBadImage, err)
}

// WrapCancelled attaches the context cause to ErrCancelled.
func WrapCancelled(err error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}
