package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	interpretationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dreamline_interpretations_total",
			Help: "Interpretations served, by whether any symbol matched.",
		},
		[]string{"result"},
	)

	symbolMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dreamline_symbol_matches_total",
			Help: "Symbol hits across all interpreted dreams.",
		},
		[]string{"orisha"},
	)

	rejectedRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dreamline_rejected_requests_total",
		Help: "Interpretation requests rejected for carrying no dream text.",
	})
)
