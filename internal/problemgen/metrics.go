package problemgen

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// problemsGenerated counts emitted problems, fallbacks included.
	problemsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arithtrainer_problems_generated_total",
		Help: "Total problems generated by operator and mode",
	}, []string{"operator", "mode"})

	// generationFallbacks counts outer budget exhaustions, labelled with the
	// operator that was originally selected.
	generationFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arithtrainer_generation_fallbacks_total",
		Help: "Total generations that fell back to the fixed problem",
	}, []string{"operator", "mode"})

	// generationAttempts tracks outer loop iterations per generation.
	generationAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arithtrainer_generation_attempts",
		Help:    "Outer loop iterations used per generated problem",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 200, 400, 800},
	})

	// divisionAttempts counts sig-figs division attempts by exit reason.
	divisionAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arithtrainer_division_attempts_total",
		Help: "Sig-figs division build attempts by exit reason",
	}, []string{"exit"})

	// answersChecked counts graded answers by result.
	answersChecked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arithtrainer_answers_checked_total",
		Help: "Total answers checked by result (correct, incorrect, invalid)",
	}, []string{"result"})
)
