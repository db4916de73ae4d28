package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// JobName is the Pushgateway job the run metrics are grouped under.
const JobName = "asistencia_deploy"

// Push sends everything gathered by gatherer to the Pushgateway at url. The
// orchestrator is a one-shot process, so metrics are pushed once at the end
// of a run instead of being scraped.
func Push(ctx context.Context, url string, gatherer prometheus.Gatherer) error {
	err := push.New(url, JobName).Gatherer(gatherer).PushContext(ctx)
	if err != nil {
		return fmt.Errorf("could not push metrics to %s: %w", url, err)
	}
	return nil
}
