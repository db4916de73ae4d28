package sequencer

import (
	"errors"
	"fmt"
)

// SubmissionError indicates that an operation could not be submitted, so no
// transaction exists for it. Typical causes are a caller without permission
// or arguments the contract rejects during gas estimation.
type SubmissionError struct {
	Method string
	Err    error
}

func NewSubmissionError(method string, err error) SubmissionError {
	return SubmissionError{
		Method: method,
		Err:    err,
	}
}

func IsSubmissionError(err error) bool {
	var target SubmissionError
	return errors.As(err, &target)
}

func (err SubmissionError) Error() string {
	return fmt.Sprintf("could not submit %s: %s", err.Method, err.Err.Error())
}

func (err SubmissionError) Unwrap() error {
	return err.Err
}
