// Package metrics holds the Prometheus collectors for the game server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	roundsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "snakeduel_rounds_started_total",
		Help: "Rounds created, including resets and difficulty changes",
	})

	roundsEnded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snakeduel_rounds_ended_total",
		Help: "Rounds ended, by the collision that killed the player",
	}, []string{"cause"})

	pelletsEaten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snakeduel_pellets_eaten_total",
		Help: "Pellets consumed, by entity",
	}, []string{"entity"})

	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "snakeduel_tick_duration_seconds",
		Help:    "Time spent advancing a round by one tick",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
	})

	finalScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "snakeduel_final_score",
		Help:    "Player segment count when a round ends",
		Buckets: prometheus.LinearBuckets(1, 5, 10),
	})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "snakeduel_active_sessions",
		Help: "Sessions with a running game engine",
	})

	connectionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snakeduel_connections_rejected_total",
		Help: "SSH connections refused, by reason",
	}, []string{"reason"})
)

func RoundStarted() { roundsStarted.Inc() }

func RoundEnded(cause string, score int) {
	roundsEnded.WithLabelValues(cause).Inc()
	finalScore.Observe(float64(score))
}

func PelletEaten(entity string) { pelletsEaten.WithLabelValues(entity).Inc() }

func ObserveTick(d time.Duration) { tickDuration.Observe(d.Seconds()) }

func SessionOpened() { activeSessions.Inc() }

func SessionClosed() { activeSessions.Dec() }

func ConnectionRejected(reason string) { connectionsRejected.WithLabelValues(reason).Inc() }
