package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	movesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pathgrid",
		Name:      "moves_total",
		Help:      "Moves applied to sessions, by kind and result.",
	}, []string{"kind", "result"})

	moveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pathgrid",
		Name:      "move_duration_seconds",
		Help:      "Time to apply a move and recalculate the path network.",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
	})

	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pathgrid",
		Name:      "evaluations_total",
		Help:      "Stateless layout evaluations, by validity.",
	}, []string{"valid"})

	puzzlesSolved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pathgrid",
		Name:      "puzzles_solved_total",
		Help:      "Moves that turned an invalid network into a valid one.",
	})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pathgrid",
		Name:      "sessions_active",
		Help:      "Sessions currently held in memory.",
	})
)

const (
	resultAccepted = "accepted"
	resultRejected = "rejected"
	resultError    = "error"
)
