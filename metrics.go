package unagi

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "unagi_client_requests_total",
		Help: "Requests sent, by command and result",
	}, []string{"command", "result"})
	sentBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "unagi_client_sent_bytes_total",
		Help: "Bytes written to the server",
	}, []string{"command"})
	receivedBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "unagi_client_received_bytes_total",
		Help: "Bytes read from the server",
	}, []string{"command"})
	requestDurations = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: "unagi_client_request_duration_seconds",
		Help: "Time from dial until the server closed the connection",
	}, []string{"command"})
)

func init() {
	prometheus.MustRegister(requests)
	prometheus.MustRegister(sentBytes)
	prometheus.MustRegister(receivedBytes)
	prometheus.MustRegister(requestDurations)
}

// WriteMetrics dumps the default registry in the text exposition format, for
// one-shot runs that never live long enough to be scraped.
func WriteMetrics(filename string) error {
	return prometheus.WriteToTextfile(filename, prometheus.DefaultGatherer)
}
