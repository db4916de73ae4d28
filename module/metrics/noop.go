package metrics

import (
	"time"

	"github.com/asistencia/asistencia-deploy/module"
)

type NoopCollector struct{}

var _ module.DeploymentMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) ContractDeployed(gasUsed uint64)                                  {}
func (nc *NoopCollector) VerificationFinished(result string)                               {}
func (nc *NoopCollector) TransactionConfirmed(method string, success bool, gasUsed uint64) {}
func (nc *NoopCollector) RunFinished(duration time.Duration)                               {}
