package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for record store errors.
var (
	ErrSave = errors.New("record store save failed")
	ErrLoad = errors.New("record store load failed")
)

// WrapSave attaches the underlying cause to ErrSave.
func WrapSave(err error) error {
	return fmt.Errorf("%w: %w", ErrSave, err)
}
