package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
)

var (
	events = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teamboard_events_total",
			Help: "Application events by name",
		},
		[]string{"event"},
	)
	exceptions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "teamboard_exceptions_total",
			Help: "Unexpected failures recorded by handlers and workflows",
		},
	)
)

// Recorder implements ports.Telemetry over zerolog and Prometheus.
// Recording never fails and never affects control flow.
type Recorder struct {
	log zerolog.Logger
}

func NewRecorder(log zerolog.Logger) *Recorder {
	return &Recorder{log: log}
}

func (r *Recorder) RecordEvent(name string) {
	events.WithLabelValues(name).Inc()
	r.log.Info().Str("event", name).Msg("event")
}

func (r *Recorder) RecordException(err error) {
	exceptions.Inc()
	r.log.Error().Err(err).Msg("exception")
}

var _ ports.Telemetry = (*Recorder)(nil)
