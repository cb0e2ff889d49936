// Package automata implements the automata updater (C8): applies Type I
// or Type II feedback to the two half-rows of a single clause's
// counters, consuming the float cache in the fixed draw order spec
// §4.8 requires (the "1-1/s before 1/s" rule) so that state is
// deterministic across implementations for a given (seed, n_jobs).
package automata

import (
	"github.com/wmigda/tsetlini-go/feedback"
	"github.com/wmigda/tsetlini-go/rng"
	"github.com/wmigda/tsetlini-go/tastate"
)

// Update applies fb to clause j's two half-rows against sample x.
// clauseFired is the clause's output for this sample (already computed
// by the clause kernel); boost is boost_true_positive_feedback;
// specificity is the s hyperparameter. weighted estimators get their
// weight[j] adjusted alongside the counters, as spec §4.8 describes.
func Update(s *tastate.State, j int, x []byte, frng *rng.FloatRNG, boost bool, specificity float64, fb feedback.Type, clauseFired bool) {
	switch fb {
	case feedback.TypeI:
		if clauseFired {
			typeIFired(s, j, x, frng, boost, specificity)
		} else {
			typeINotFired(s, j, x, frng, specificity)
		}
		if s.HasWeights() && clauseFired {
			s.IncrementWeight(j)
		}
	case feedback.TypeII:
		if clauseFired {
			typeIIFired(s, j, x)
			if s.HasWeights() {
				s.DecrementWeight(j)
			}
		}
	case feedback.None:
		// no update
	}
}

func typeIFired(s *tastate.State, j int, x []byte, frng *rng.FloatRNG, boost bool, specificity float64) {
	pNotS := float32(1 - 1/specificity)
	pS := float32(1 / specificity)
	posRow, negRow := 2*j, 2*j+1

	for k, xk := range x {
		if xk == 1 {
			// boost short-circuits the draw entirely, matching the
			// pseudocode's "boost OR U() <= 1-1/s".
			if boost || frng.Next() <= pNotS {
				s.IncrementClipped(posRow, k)
			}
			if frng.Next() <= pS {
				s.DecrementClipped(negRow, k)
			}
		} else {
			if boost || frng.Next() <= pNotS {
				s.IncrementClipped(negRow, k)
			}
			if frng.Next() <= pS {
				s.DecrementClipped(posRow, k)
			}
		}
	}
}

func typeINotFired(s *tastate.State, j int, x []byte, frng *rng.FloatRNG, specificity float64) {
	pS := float32(1 / specificity)
	posRow, negRow := 2*j, 2*j+1

	for k := range x {
		if frng.Next() <= pS {
			s.DecrementClipped(posRow, k)
		}
		if frng.Next() <= pS {
			s.DecrementClipped(negRow, k)
		}
	}
}

func typeIIFired(s *tastate.State, j int, x []byte) {
	posRow, negRow := 2*j, 2*j+1
	for k, xk := range x {
		if xk == 0 && s.Get(posRow, k) < 0 {
			s.IncrementClipped(posRow, k)
		}
		if xk == 1 && s.Get(negRow, k) < 0 {
			s.IncrementClipped(negRow, k)
		}
	}
}
