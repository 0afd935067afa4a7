package httperr

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable marks any failure of the backing store.
var ErrStoreUnavailable = errors.New("store_unavailable")

type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreUnavailable, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func IsStore(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
