package bootstrap

import (
	"fmt"
	"math/big"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/asistencia/asistencia-deploy/model/deployment"
)

// Report summarizes a run.
type Report struct {
	// Deployment is nil if the contract was not deployed.
	Deployment *deployment.Deployment
	// Verification is one of the metrics.Verification* results.
	Verification    string
	VerificationErr error
	Outcomes        []*deployment.Outcome
	Duration        time.Duration
}

// FailedOperations returns an error listing every operation confirmed with a
// failure receipt, or nil if all of them succeeded.
func (r *Report) FailedOperations() error {
	var result *multierror.Error
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			continue
		}
		result = multierror.Append(result, fmt.Errorf("%s (%s) failed in transaction %s", o.Operation.Label, o.Operation.Method, o.TxHash.Hex()))
	}
	return result.ErrorOrNil()
}

// Record converts the report into its persisted form.
func (r *Report) Record(chainID *big.Int) deployment.Record {
	record := deployment.Record{
		Verification: r.Verification,
		Operations:   make([]deployment.OperationRecord, 0, len(r.Outcomes)),
	}
	if chainID != nil {
		record.ChainID = chainID.String()
	}
	if r.Deployment != nil {
		record.Contract = r.Deployment.Descriptor.ContractName
		record.Address = r.Deployment.Address.Hex()
		record.DeployTx = r.Deployment.TxHash.Hex()
		record.BlockNumber = r.Deployment.BlockNumber
		record.ConstructorArgs = r.Deployment.Descriptor.Args()
	}
	for _, o := range r.Outcomes {
		record.Operations = append(record.Operations, deployment.NewOperationRecord(o))
	}
	return record
}
