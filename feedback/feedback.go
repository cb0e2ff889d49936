// Package feedback implements the feedback allocator (C7): given the
// current clipped votes, decides which clauses receive Type I
// (reinforce toward firing) or Type II (reinforce toward the opposite
// action) feedback for the current sample, consuming the float cache
// in the fixed draw order spec §4.7 requires for determinism.
package feedback

import (
	"math"

	"github.com/pkg/errors"

	"github.com/wmigda/tsetlini-go/rng"
)

// Type is the feedback assigned to one clause for the current sample.
type Type int8

const (
	None  Type = 0
	TypeI Type = 1
	TypeII Type = -1
)

// AllocateClassifier fills feedback[j] for every clause belonging to
// the target label t (positive half [posStartT, posStartT+m), negative
// half [negStartT, negStartT+m)) and the sampled opposite label o, per
// spec §4.7's five-way rule. feedback must be zeroed by the caller
// before this call; clauses outside t and o are left untouched (the
// orchestrator resets the whole slice once per sample). Draws are
// consumed in the order target-positive, target-negative,
// opposite-positive, opposite-negative, matching the spec's listing
// order so (seed, n_jobs) fully determines the sequence.
func AllocateClassifier(
	frng *rng.FloatRNG,
	feedback []Type,
	posStartT, negStartT, m int,
	posStartO, negStartO int,
	voteT, voteO, threshold int,
) {
	pPos := float32(threshold-voteT) / float32(2*threshold)
	pNeg := float32(threshold+voteO) / float32(2*threshold)

	for i := 0; i < m; i++ {
		if frng.Next() <= pPos {
			feedback[posStartT+i] = TypeI
		}
	}
	for i := 0; i < m; i++ {
		if frng.Next() <= pPos {
			feedback[negStartT+i] = TypeII
		}
	}
	for i := 0; i < m; i++ {
		if frng.Next() <= pNeg {
			feedback[posStartO+i] = TypeII
		}
	}
	for i := 0; i < m; i++ {
		if frng.Next() <= pNeg {
			feedback[negStartO+i] = TypeI
		}
	}
}

// LossFn is the regressor's per-loss-function probability schedule: how
// strongly a given |error| drives feedback, and which direction (Type I
// toward firing more, Type II toward firing less) the signed error
// implies.
type LossFn interface {
	Probability(absErr float64) float64
	Direction(err float64) Type
}

type direction struct{}

func (direction) Direction(err float64) Type {
	switch {
	case err < 0:
		return TypeI
	case err > 0:
		return TypeII
	default:
		return None
	}
}

func clampProbability(p float64) float64 {
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// mae/l1 use |error| directly as the probability (unit scale).
type linearLoss struct{ direction }

func (linearLoss) Probability(e float64) float64 { return clampProbability(e) }

// mse/l2 use squared error (emphasizes large misses more than linear).
type squaredLoss struct{ direction }

func (squaredLoss) Probability(e float64) float64 { return clampProbability(e * e) }

// huberLoss ("L1+2"): quadratic below C1, linear above — the standard
// Huber loss, named for blending L2 (near zero) and L1 (far from zero).
type huberLoss struct {
	direction
	c1 float64
}

func (h huberLoss) Probability(e float64) float64 {
	if h.c1 <= 0 {
		return clampProbability(e)
	}
	if e <= h.c1 {
		return clampProbability(0.5 * e * e / h.c1)
	}
	return clampProbability(e - 0.5*h.c1)
}

// berHuLoss is the reverse Huber loss: linear below C1, quadratic above
// — the mirror image of huberLoss, matching the "berHu" name.
type berHuLoss struct {
	direction
	c1 float64
}

func (b berHuLoss) Probability(e float64) float64 {
	if b.c1 <= 0 {
		return clampProbability(e)
	}
	if e <= b.c1 {
		return clampProbability(e)
	}
	return clampProbability((e*e + b.c1*b.c1) / (2 * b.c1))
}

// NewLossFn tabulates the named loss function at the params boundary,
// per spec §3's loss_fn enumeration {MSE,MAE,L1,L2,L1+2,berHu}.
func NewLossFn(name string, c1 float64) (LossFn, error) {
	switch name {
	case "MSE", "L2":
		return squaredLoss{}, nil
	case "MAE", "L1":
		return linearLoss{}, nil
	case "L1+2":
		return huberLoss{c1: c1}, nil
	case "berHu":
		return berHuLoss{c1: c1}, nil
	default:
		return nil, errors.Errorf("unknown loss_fn %q", name)
	}
}

// boxMullerJitter draws a standard-normal sample from two uniform draws
// of frng, the companion jitter recovered from the original's
// box_muller parameter (SPEC_FULL §3 expansion).
func boxMullerJitter(frng *rng.FloatRNG) float64 {
	u1 := float64(frng.Next())
	u2 := float64(frng.Next())
	if u1 <= 1e-12 {
		u1 = 1e-12
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// AllocateRegressor assigns feedback[j] for every firing clause
// (clauseOutput[j] != 0), per spec §4.7's regressor rule: the signed
// error v-target picks the direction, lf.Probability(|error|) (with
// optional Box-Muller jitter added to |error| first) gates each draw.
func AllocateRegressor(
	frng *rng.FloatRNG,
	lf LossFn,
	boxMuller bool,
	clauseOutput []byte,
	feedback []Type,
	vote int,
	target float64,
) {
	err := float64(vote) - target
	absErr := math.Abs(err)
	if boxMuller {
		absErr += boxMullerJitter(frng)
		if absErr < 0 {
			absErr = 0
		}
	}

	dir := lf.Direction(err)
	if dir == None {
		return
	}
	p := float32(lf.Probability(absErr))

	for j, out := range clauseOutput {
		if out == 0 {
			continue
		}
		if frng.Next() <= p {
			feedback[j] = dir
		}
	}
}
