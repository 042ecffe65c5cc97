package logger

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	levelCounter     *prometheus.CounterVec //nolint:gochecknoglobals
	levelCounterOnce sync.Once              //nolint:gochecknoglobals
)

// LevelCounterHook counts emitted log statements per level, so a spike in
// error-level logging shows up on the metrics side without log scraping.
type LevelCounterHook struct{}

// Run implements zerolog.Hook.
func (h LevelCounterHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level != zerolog.NoLevel {
		levelCounter.WithLabelValues(level.String()).Inc()
	}
}

// NewLevelCounterHook returns the hook, registering the counter vec on first
// use. The service name becomes a constant label.
func NewLevelCounterHook(serviceName string) LevelCounterHook {
	levelCounterOnce.Do(func() {
		levelCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "log_statements_total",
				Help:        "Number of log statements, differentiated by log level.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"level"},
		)
	})

	return LevelCounterHook{}
}
