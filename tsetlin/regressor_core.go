package tsetlin

import (
	"github.com/wmigda/tsetlini-go/align"
	"github.com/wmigda/tsetlini-go/automata"
	"github.com/wmigda/tsetlini-go/events"
	"github.com/wmigda/tsetlini-go/feedback"
	"github.com/wmigda/tsetlini-go/params"
	"github.com/wmigda/tsetlini-go/rng"
	"github.com/wmigda/tsetlini-go/tastate"
	"github.com/wmigda/tsetlini-go/vote"
	"github.com/wmigda/tsetlini-go/workerpool"
)

// regressorCore holds the state shared by RegressorClassic and
// RegressorBitwise: single-polarity clauses voting toward a scalar
// target in [0, threshold] (spec §4.6).
type regressorCore struct {
	p    params.Regressor
	sink events.Sink
	lf   feedback.LossFn

	fitted           bool
	ta               *tastate.State
	irng             *rng.IntRNG
	frng             *rng.FloatRNG
	pool             *workerpool.Pool
	numberOfFeatures int
}

func newRegressorCore(p params.Regressor, sink events.Sink) (*regressorCore, error) {
	if sink == nil {
		sink = events.NopSink{}
	}
	lf, err := feedback.NewLossFn(p.LossFn, p.LossFnC1)
	if err != nil {
		return nil, err
	}
	return &regressorCore{p: p, sink: sink, lf: lf}, nil
}

func (c *regressorCore) ensureInitialized(numberOfFeatures int) error {
	if c.fitted {
		if numberOfFeatures != c.numberOfFeatures {
			return featureCountMismatch(numberOfFeatures, c.numberOfFeatures)
		}
		return nil
	}

	width, err := tastate.ResolveWidth(c.p.CountingType, c.p.NumberOfStates)
	if err != nil {
		return err
	}

	c.ta = tastate.New(width, c.p.Clauses, numberOfFeatures, c.p.NumberOfStates, true, c.p.Weighted, int32(c.p.MaxWeight))
	c.irng = rng.NewIntRNG(*c.p.RandomState)
	c.frng = rng.NewFloatRNG(*c.p.RandomState)
	c.ta.Init(c.irng)
	c.pool = workerpool.New(c.p.NJobs)

	c.numberOfFeatures = numberOfFeatures
	c.p.NumberOfFeatures = numberOfFeatures
	c.fitted = true
	return nil
}

func (c *regressorCore) fit(samples sampleSet, y []float64, epochs int) error {
	if err := validateRegressorTargets(y, samples.Len(), c.p.Threshold); err != nil {
		return err
	}
	if err := c.ensureInitialized(samples.NumberOfFeatures()); err != nil {
		return err
	}

	c.sink.Emit(events.Event{Kind: events.FitStarted, Fields: map[string]any{"epochs": epochs, "samples": samples.Len()}})

	K := c.p.Clauses
	clauseOutput := make([]byte, align.AlignedLen[int8](K, align.DefaultAlignment))[:K]
	fb := make([]feedback.Type, K)
	perm := make([]int, samples.Len())
	for i := range perm {
		perm[i] = i
	}

	for epoch := 0; epoch < epochs; epoch++ {
		c.irng.Shuffle(perm)

		for _, idx := range perm {
			samples.Evaluate(c.pool, c.ta, idx, c.p.ClauseOutputTileSize, true, clauseOutput)
			v := vote.RegressorVote(clauseOutput, c.ta.Weights, c.p.Threshold)

			for i := range fb {
				fb[i] = feedback.None
			}
			feedback.AllocateRegressor(c.frng, c.lf, c.p.BoxMuller, clauseOutput, fb, v, y[idx])

			x := samples.Row(idx)
			for j := 0; j < K; j++ {
				if fb[j] == feedback.None {
					continue
				}
				automata.Update(c.ta, j, x, c.frng, c.p.BoostTruePositiveFeedback, c.p.S, fb[j], clauseOutput[j] != 0)
			}
		}

		c.sink.Emit(events.Event{Kind: events.EpochCompleted, Fields: map[string]any{"epoch": epoch}})
	}

	c.sink.Emit(events.Event{Kind: events.FitCompleted, Fields: map[string]any{"epochs": epochs}})
	return nil
}

func (c *regressorCore) predict(samples sampleSet, idx int) int {
	clauseOutput := make([]byte, align.AlignedLen[int8](c.p.Clauses, align.DefaultAlignment))[:c.p.Clauses]
	samples.Evaluate(c.pool, c.ta, idx, c.p.ClauseOutputTileSize, false, clauseOutput)
	return vote.RegressorVote(clauseOutput, c.ta.Weights, c.p.Threshold)
}
