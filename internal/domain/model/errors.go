package model

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidStudentID marks a student id that is not exactly five digits.
	ErrInvalidStudentID = errors.New("student id must be exactly 5 digits")
)
