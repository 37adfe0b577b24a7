package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	syncHit      = "hit"
	syncCreated  = "created"
	syncConflict = "conflict"
	syncError    = "error"

	decisionAllowed = "allowed"
	decisionDenied  = "denied"
)

var (
	syncCounter = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Namespace: "hrportal",
			Name:      "identity_sync_total",
			Help:      "Identity sync outcomes, by result.",
		},
		[]string{"result"},
	)

	decisionCounter = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Namespace: "hrportal",
			Name:      "access_decisions_total",
			Help:      "Access rule decisions, by outcome.",
		},
		[]string{"decision"},
	)
)
