package game

import "github.com/prometheus/client_golang/prometheus"

var (
	PhasesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_phases_processed_total",
			Help: "Phases the scheduler has resolved, by phase",
		},
		[]string{"phase"},
	)
	DecisionsCollected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_decisions_collected_total",
			Help: "Decisions collected during phases, by source and outcome",
		},
		[]string{"source", "outcome"},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_finished_total",
			Help: "Finished games, by winner faction (or 'stopped')",
		},
		[]string{"winner"},
	)
)

func init() {
	prometheus.MustRegister(PhasesProcessed)
	prometheus.MustRegister(DecisionsCollected)
	prometheus.MustRegister(GamesFinished)
}
