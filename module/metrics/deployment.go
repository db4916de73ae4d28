package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DeploymentCollector implements metric collection for an orchestration run.
type DeploymentCollector struct {
	deployGasUsed prometheus.Counter
	transactions  *prometheus.CounterVec
	txGasUsed     *prometheus.CounterVec
	verification  *prometheus.CounterVec
	runDuration   prometheus.Gauge
}

func NewDeploymentCollector(registerer prometheus.Registerer) *DeploymentCollector {
	r := NewRegisterer(registerer)

	collector := &DeploymentCollector{
		deployGasUsed: r.RegisterNewCounter(prometheus.CounterOpts{
			Namespace: namespaceDeploy,
			Name:      "deploy_gas_used_total",
			Help:      "gas used by the contract creation transaction",
		}),
		transactions: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceDeploy,
			Subsystem: subsystemTx,
			Name:      "confirmed_total",
			Help:      "number of confirmed contract calls, by method and receipt status",
		}, []string{LabelMethod, LabelStatus}),
		txGasUsed: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceDeploy,
			Subsystem: subsystemTx,
			Name:      "gas_used_total",
			Help:      "gas used by confirmed contract calls, by method",
		}, []string{LabelMethod}),
		verification: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceDeploy,
			Name:      "verification_total",
			Help:      "source verification attempts, by result",
		}, []string{LabelResult}),
		runDuration: r.RegisterNewGauge(prometheus.GaugeOpts{
			Namespace: namespaceDeploy,
			Name:      "run_duration_seconds",
			Help:      "wall clock duration of the last orchestration run",
		}),
	}
	return collector
}

func (c *DeploymentCollector) ContractDeployed(gasUsed uint64) {
	c.deployGasUsed.Add(float64(gasUsed))
}

func (c *DeploymentCollector) VerificationFinished(result string) {
	c.verification.WithLabelValues(result).Inc()
}

func (c *DeploymentCollector) TransactionConfirmed(method string, success bool, gasUsed uint64) {
	status := StatusFailure
	if success {
		status = StatusSuccess
	}
	c.transactions.WithLabelValues(method, status).Inc()
	c.txGasUsed.WithLabelValues(method).Add(float64(gasUsed))
}

func (c *DeploymentCollector) RunFinished(duration time.Duration) {
	c.runDuration.Set(duration.Seconds())
}
