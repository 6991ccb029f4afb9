package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/happy6team/ooh-marketing-sales/core"
)

// Stage names used as metric labels.
const (
	StageExtract = "extract"
	StageMatch   = "match"
	StagePersist = "persist"
)

// Metrics holds the pipeline's Prometheus collectors.
type Metrics struct {
	runs            *prometheus.CounterVec
	outcomes        *prometheus.CounterVec
	brandsExtracted prometheus.Counter
	stageDuration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "oohsales",
				Subsystem: "pipeline",
				Name:      "runs_total",
				Help:      "Total number of pipeline runs by result",
			},
			[]string{"result"},
		),
		outcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "oohsales",
				Subsystem: "pipeline",
				Name:      "brand_outcomes_total",
				Help:      "Total number of per-brand outcomes by status",
			},
			[]string{"status"},
		),
		brandsExtracted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "oohsales",
				Subsystem: "pipeline",
				Name:      "brands_extracted_total",
				Help:      "Total number of brands returned by extraction",
			},
		),
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "oohsales",
				Subsystem: "pipeline",
				Name:      "stage_duration_seconds",
				Help:      "Duration of pipeline stages in seconds",
				Buckets:   []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"stage"},
		),
	}
}

func (m *Metrics) observeStage(stage string, started time.Time) {
	m.stageDuration.WithLabelValues(stage).Observe(time.Since(started).Seconds())
}

func (m *Metrics) recordOutcome(status core.OutcomeStatus) {
	m.outcomes.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) recordRun(result string) {
	m.runs.WithLabelValues(result).Inc()
}
