package module

import "time"

// DeploymentMetrics collects metrics of a single orchestration run.
type DeploymentMetrics interface {

	// ContractDeployed is called once the creation receipt is obtained.
	ContractDeployed(gasUsed uint64)

	// VerificationFinished records the outcome of the verification attempt.
	VerificationFinished(result string)

	// TransactionConfirmed is called for every confirmed sequencer operation.
	TransactionConfirmed(method string, success bool, gasUsed uint64)

	// RunFinished records the wall clock duration of the whole run.
	RunFinished(duration time.Duration)
}
