package pvdata

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	directionEncode = "encode"
	directionDecode = "decode"
)

var (
	registerOnce sync.Once

	streamValues = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pvdata",
			Subsystem: "stream",
			Name:      "values_total",
			Help:      "Values encoded or decoded.",
		},
		[]string{"direction"},
	)
	streamBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pvdata",
			Subsystem: "stream",
			Name:      "bytes_total",
			Help:      "Bytes written by Encoders or read by Decoders.",
		},
		[]string{"direction"},
	)
	streamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pvdata",
			Subsystem: "stream",
			Name:      "errors_total",
			Help:      "Encode or Decode calls that returned an error.",
		},
		[]string{"direction"},
	)
)

// RegisterMetrics registers pvdata's collectors with the default prometheus registry.
// It is called by NewEncoder and NewDecoder when Config.Metrics is set, and is safe to call more than once.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(streamValues, streamBytes, streamErrors)
	})
}

func recordStream(direction string, bytes int64, err error) {
	if bytes > 0 {
		streamBytes.WithLabelValues(direction).Add(float64(bytes))
	}
	if err != nil {
		streamErrors.WithLabelValues(direction).Inc()
		return
	}
	streamValues.WithLabelValues(direction).Inc()
}
