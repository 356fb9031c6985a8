package base

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// Metrics holds the counters of one transport side. Counters are registered
// in the default VictoriaMetrics set and shared by all transports with the
// same side and name.
type Metrics struct {
	requests *metrics.Counter
	errors   *metrics.Counter
	retries  *metrics.Counter
	bytesIn  *metrics.Counter
	bytesOut *metrics.Counter
	duration *metrics.Histogram
}

// NewMetrics returns the metrics for side ("client" or "server") of the named transport.
func NewMetrics(side, name string) *Metrics {
	labels := fmt.Sprintf(`{side=%q,transport=%q}`, side, name)
	return &Metrics{
		requests: metrics.GetOrCreateCounter("scanmaster_transport_requests_total" + labels),
		errors:   metrics.GetOrCreateCounter("scanmaster_transport_errors_total" + labels),
		retries:  metrics.GetOrCreateCounter("scanmaster_transport_retries_total" + labels),
		bytesIn:  metrics.GetOrCreateCounter("scanmaster_transport_bytes_in_total" + labels),
		bytesOut: metrics.GetOrCreateCounter("scanmaster_transport_bytes_out_total" + labels),
		duration: metrics.GetOrCreateHistogram("scanmaster_transport_request_duration_seconds" + labels),
	}
}

// Request records a completed request.
func (m *Metrics) Request(start time.Time, in, out int) {
	m.requests.Inc()
	m.bytesIn.Add(in)
	m.bytesOut.Add(out)
	m.duration.UpdateDuration(start)
}

// Error records a failed request.
func (m *Metrics) Error() { m.errors.Inc() }

// Retry records a repeated attempt.
func (m *Metrics) Retry() { m.retries.Inc() }
