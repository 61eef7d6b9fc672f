package pubsub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsPublishedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "library",
		Subsystem: "broker",
		Name:      "events_published_total",
		Help:      "The total number of events published, per topic.",
	}, []string{"topic"})

	eventsDroppedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "library",
		Subsystem: "broker",
		Name:      "events_dropped_total",
		Help:      "The total number of deliveries skipped because a subscriber queue was full.",
	}, []string{"topic"})

	subscribersGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "library",
		Subsystem: "broker",
		Name:      "subscribers",
		Help:      "The number of live subscriptions, per topic.",
	}, []string{"topic"})
)
