package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	requestDuration *prom.HistogramVec
	requestResults  *prom.CounterVec
	saveOutcomes    *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
// A nil registry gets a fresh private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		requestDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "cocos_skills",
			Name:      "editor_request_duration_seconds",
			Help:      "Duration of requests sent to the editor HTTP bridge",
			Buckets:   prom.DefBuckets,
		}, []string{"module", "action"}),
		requestResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "cocos_skills",
			Name:      "editor_requests_total",
			Help:      "Editor requests by module, action and result",
		}, []string{"module", "action", "result"}),
		saveOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "cocos_skills",
			Name:      "prefab_saves_total",
			Help:      "Prefab save attempts by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.requestDuration, pr.requestResults, pr.saveOutcomes)
	return pr
}

func (p *PrometheusRecorder) ObserveRequestDuration(module, action string, d time.Duration, success bool) {
	if p == nil || p.requestDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.requestDuration.WithLabelValues(module, action).Observe(d.Seconds())
	p.requestResults.WithLabelValues(module, action, res).Inc()
}

func (p *PrometheusRecorder) IncSaveOutcome(outcome SaveOutcome) {
	if p == nil || p.saveOutcomes == nil {
		return
	}
	p.saveOutcomes.WithLabelValues(string(outcome)).Inc()
}
