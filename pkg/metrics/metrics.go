package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector kinds understood by NewMetric.
const (
	CounterVec   = "counter_vec"
	HistogramVec = "histogram_vec"
	SummaryVec   = "summary_vec"
)

// HistogramBuckets are in milliseconds. Notification handling is bounded by
// the store timeout, so the tail stops at a few seconds.
var HistogramBuckets = []float64{
	1, 2, 5, 10, 25, 50, 75, 100, 150, 250, 500, 750,
	1000, 1500, 2000, 3000, 5000,
}

// Metric describes one collector. MetricCollector is filled in on registration.
type Metric struct {
	MetricCollector prometheus.Collector
	ID              string
	Name            string
	Description     string
	Type            string
	Args            []string
}

// NewMetric builds the collector for m.Type, or nil for an unknown kind.
func NewMetric(m *Metric, subsystem string) prometheus.Collector {
	switch m.Type {
	case CounterVec:
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      m.Name,
			Help:      m.Description,
		}, m.Args)
	case HistogramVec:
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      m.Name,
			Help:      m.Description,
			Buckets:   HistogramBuckets,
		}, m.Args)
	case SummaryVec:
		return prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Subsystem: subsystem,
			Name:      m.Name,
			Help:      m.Description,
		}, m.Args)
	}
	return nil
}

// MetricsBusinessProcess times notification processing, labelled by flow and
// result code.
var MetricsBusinessProcess = &Metric{
	ID:          "bpDur",
	Name:        "bp_dur",
	Description: "process latency in milliseconds",
	Type:        HistogramVec,
	Args:        []string{"type", "subtype"},
}

// ObserveBusinessProcess records elapsed time since start under type/subtype.
// It is a no-op until MetricsBusinessProcess has been registered.
func ObserveBusinessProcess(typ, subtype string, start time.Time) {
	h, ok := MetricsBusinessProcess.MetricCollector.(*prometheus.HistogramVec)
	if !ok || h == nil {
		return
	}
	h.WithLabelValues(typ, subtype).Observe(MillisecondsSince(start))
}

// RefererKey is the request header copied into the ref label.
const RefererKey = "X-Referer"
