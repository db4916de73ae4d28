package contracts

import (
	"errors"
	"fmt"
)

// DeploymentError indicates the contract could not be deployed. It is fatal
// to an orchestration run.
type DeploymentError struct {
	Contract string
	Err      error
}

func NewDeploymentErrorf(contract string, msg string, args ...any) DeploymentError {
	return DeploymentError{
		Contract: contract,
		Err:      fmt.Errorf(msg, args...),
	}
}

func IsDeploymentError(err error) bool {
	var target DeploymentError
	return errors.As(err, &target)
}

func (err DeploymentError) Error() string {
	return fmt.Sprintf("could not deploy %s: %s", err.Contract, err.Err.Error())
}

func (err DeploymentError) Unwrap() error {
	return err.Err
}
