// Package tsetlin is the estimator orchestrator (C9) and public façade
// (C11): four concrete types (ClassifierClassic, ClassifierBitwise,
// RegressorClassic, RegressorBitwise) built over the shared
// classifierCore/regressorCore orchestration loop described in spec
// §4.9, parameterized only by the sampleSet representation (evaluator.go)
// so the clause-evaluate / vote / allocate-feedback / update-automata
// pipeline is written once.
package tsetlin

import (
	"github.com/wmigda/tsetlini-go/align"
	"github.com/wmigda/tsetlini-go/automata"
	"github.com/wmigda/tsetlini-go/events"
	"github.com/wmigda/tsetlini-go/feedback"
	"github.com/wmigda/tsetlini-go/params"
	"github.com/wmigda/tsetlini-go/result"
	"github.com/wmigda/tsetlini-go/rng"
	"github.com/wmigda/tsetlini-go/tastate"
	"github.com/wmigda/tsetlini-go/vote"
	"github.com/wmigda/tsetlini-go/workerpool"
)

// classifierCore holds the state shared by ClassifierClassic and
// ClassifierBitwise: everything except how a sample's clause outputs
// are computed.
type classifierCore struct {
	p    params.Classifier
	sink events.Sink

	fitted           bool
	ta               *tastate.State
	irng             *rng.IntRNG
	frng             *rng.FloatRNG
	pool             *workerpool.Pool
	numberOfLabels   int
	numberOfFeatures int
}

func newClassifierCore(p params.Classifier, sink events.Sink) *classifierCore {
	if sink == nil {
		sink = events.NopSink{}
	}
	return &classifierCore{p: p, sink: sink}
}

func (c *classifierCore) ensureInitialized(numberOfFeatures, numberOfLabels int) error {
	if c.fitted {
		if numberOfFeatures != c.numberOfFeatures {
			return featureCountMismatch(numberOfFeatures, c.numberOfFeatures)
		}
		if numberOfLabels > c.numberOfLabels {
			return errorfLabelGrowth(numberOfLabels, c.numberOfLabels)
		}
		return nil
	}

	width, err := tastate.ResolveWidth(c.p.CountingType, c.p.NumberOfStates)
	if err != nil {
		return err
	}

	numberOfClauses := numberOfLabels * c.p.ClausesPerLabel
	c.ta = tastate.New(width, numberOfClauses, numberOfFeatures, c.p.NumberOfStates, true, c.p.Weighted, int32(c.p.MaxWeight))
	c.irng = rng.NewIntRNG(*c.p.RandomState)
	c.frng = rng.NewFloatRNG(*c.p.RandomState)
	c.ta.Init(c.irng)
	c.pool = workerpool.New(c.p.NJobs)

	c.numberOfFeatures = numberOfFeatures
	c.numberOfLabels = numberOfLabels
	c.p.NumberOfFeatures = numberOfFeatures
	c.p.NumberOfLabels = numberOfLabels
	c.fitted = true
	return nil
}

func (c *classifierCore) numberOfClauses() int { return c.numberOfLabels * c.p.ClausesPerLabel }

// fit runs `epochs` epochs of spec §4.9's orchestration loop over
// samples/y, initializing state on first call.
func (c *classifierCore) fit(samples sampleSet, y []int, maxLabels, epochs int) error {
	numberOfLabels, err := validateClassifierLabels(y, samples.Len(), maxLabels)
	if err != nil {
		return err
	}
	if c.fitted {
		numberOfLabels = c.numberOfLabels
	}
	if err := validateClassifierLabelsAgainst(y, samples.Len(), numberOfLabels); err != nil {
		return err
	}
	if err := c.ensureInitialized(samples.NumberOfFeatures(), numberOfLabels); err != nil {
		return err
	}

	c.sink.Emit(events.Event{Kind: events.FitStarted, Fields: map[string]any{"epochs": epochs, "samples": samples.Len()}})

	K := c.numberOfClauses()
	m := c.p.ClausesPerLabel / 2
	clauseOutput := make([]byte, align.AlignedLen[int8](K, align.DefaultAlignment))[:K]
	fb := make([]feedback.Type, K)
	perm := make([]int, samples.Len())
	for i := range perm {
		perm[i] = i
	}

	for epoch := 0; epoch < epochs; epoch++ {
		c.irng.Shuffle(perm)

		for _, idx := range perm {
			target := y[idx]
			opposite := (target + 1 + int(c.irng.Mod(uint32(c.numberOfLabels-1)))) % c.numberOfLabels

			samples.Evaluate(c.pool, c.ta, idx, c.p.ClauseOutputTileSize, true, clauseOutput)

			posT, negT := target*c.p.ClausesPerLabel, target*c.p.ClausesPerLabel+m
			posO, negO := opposite*c.p.ClausesPerLabel, opposite*c.p.ClausesPerLabel+m

			voteT := vote.ClassifierLabelVote(clauseOutput, c.ta.Weights, posT, negT, m, c.p.Threshold)
			voteO := vote.ClassifierLabelVote(clauseOutput, c.ta.Weights, posO, negO, m, c.p.Threshold)

			for i := posT; i < posT+m; i++ {
				fb[i] = feedback.None
			}
			for i := negT; i < negT+m; i++ {
				fb[i] = feedback.None
			}
			for i := posO; i < posO+m; i++ {
				fb[i] = feedback.None
			}
			for i := negO; i < negO+m; i++ {
				fb[i] = feedback.None
			}

			feedback.AllocateClassifier(c.frng, fb, posT, negT, m, posO, negO, voteT, voteO, c.p.Threshold)

			x := samples.Row(idx)
			applyClauseRange := func(start int) {
				for i := start; i < start+m; i++ {
					if fb[i] == feedback.None {
						continue
					}
					automata.Update(c.ta, i, x, c.frng, c.p.BoostTruePositiveFeedback, c.p.S, fb[i], clauseOutput[i] != 0)
				}
			}
			applyClauseRange(posT)
			applyClauseRange(negT)
			applyClauseRange(posO)
			applyClauseRange(negO)
		}

		fields := map[string]any{"epoch": epoch}
		if c.p.Verbose {
			fields["clause_output_last_sample"] = append([]byte(nil), clauseOutput...)
		}
		c.sink.Emit(events.Event{Kind: events.EpochCompleted, Fields: fields})
	}

	c.sink.Emit(events.Event{Kind: events.FitCompleted, Fields: map[string]any{"epochs": epochs}})
	return nil
}

// votesFor evaluates samples[idx] (predict path: all-exclude suppressed)
// and returns the per-label clipped votes.
func (c *classifierCore) votesFor(samples sampleSet, idx int) []int {
	K := c.numberOfClauses()
	clauseOutput := make([]byte, align.AlignedLen[int8](K, align.DefaultAlignment))[:K]
	samples.Evaluate(c.pool, c.ta, idx, c.p.ClauseOutputTileSize, false, clauseOutput)

	m := c.p.ClausesPerLabel / 2
	votes := make([]int, c.numberOfLabels)
	for l := 0; l < c.numberOfLabels; l++ {
		pos, neg := l*c.p.ClausesPerLabel, l*c.p.ClausesPerLabel+m
		votes[l] = vote.ClassifierLabelVote(clauseOutput, c.ta.Weights, pos, neg, m, c.p.Threshold)
	}
	return votes
}

func (c *classifierCore) predict(samples sampleSet, idx int) int {
	return vote.Argmax(c.votesFor(samples, idx))
}

func errorfLabelGrowth(got, have int) error {
	return result.Newf(result.ValueError, "y introduces label range up to %d, fitted state only supports %d labels", got, have)
}
