package service

import "github.com/prometheus/client_golang/prometheus"

var (
	circulationEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "library_circulation_events_total", Help: "Issue/return/fine events"},
		[]string{"event"},
	)
	finesAssessed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "library_fines_assessed_total", Help: "Sum of fines assessed on late returns"},
	)
)

func init() { prometheus.MustRegister(circulationEvents, finesAssessed) }
