package verification

import (
	"errors"
	"fmt"
)

// ErrAlreadyVerified is returned when the explorer already has the source of
// the contract.
var ErrAlreadyVerified = errors.New("contract source code already verified")

// VerificationError indicates that source verification did not succeed. It
// is advisory: callers log it and carry on.
type VerificationError struct {
	Err error
}

func NewVerificationErrorf(msg string, args ...any) VerificationError {
	return VerificationError{
		Err: fmt.Errorf(msg, args...),
	}
}

func IsVerificationError(err error) bool {
	var target VerificationError
	return errors.As(err, &target)
}

// IsAlreadyVerified returns true if err reports an earlier verification of
// the same contract.
func IsAlreadyVerified(err error) bool {
	return errors.Is(err, ErrAlreadyVerified)
}

func (err VerificationError) Error() string {
	return err.Err.Error()
}

func (err VerificationError) Unwrap() error {
	return err.Err
}
