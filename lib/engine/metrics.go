package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// Outcome labels of the line counter
const (
	resultAccepted = "accepted"
	resultRejected = "rejected"
)

// lineCounter returns the counter of processed lines for one command and outcome
func (e *Engine) lineCounter(name, result string) *metrics.Counter {
	return e.metrics.GetOrCreateCounter(fmt.Sprintf(`dbs_lines_total{command=%q,result=%q}`, name, result))
}

// observe records the outcome and the duration of one processed line
func (e *Engine) observe(name string, res Result, start time.Time) {
	result := resultAccepted
	if res.Err != nil {
		result = resultRejected
	}
	e.lineCounter(name, result).Inc()
	e.metrics.GetOrCreateHistogram(fmt.Sprintf(`dbs_line_duration_seconds{command=%q}`, name)).UpdateDuration(start)
}

// Processed returns how many lines of the given command were accepted or rejected.
// Lines that could not be parsed are counted under the name "unknown".
func (e *Engine) Processed(name string, accepted bool) uint64 {
	result := resultAccepted
	if !accepted {
		result = resultRejected
	}
	return e.lineCounter(name, result).Get()
}

// WriteMetrics writes all counters and histograms in Prometheus text format
func (e *Engine) WriteMetrics(w io.Writer) {
	e.metrics.WritePrometheus(w)
}
