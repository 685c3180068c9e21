package session

import (
	"errors"
	"fmt"
)

var (
	// ErrStore matches every StoreError with errors.Is.
	ErrStore = errors.New("record store failure")
	// ErrSaveInProgress is returned when Save is called while an earlier
	// save has not finished.
	ErrSaveInProgress = errors.New("save already in progress")
)

// StoreError wraps a failed store call with the operation that issued it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
