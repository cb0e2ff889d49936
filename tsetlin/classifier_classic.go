package tsetlin

import (
	"github.com/wmigda/tsetlini-go/events"
	"github.com/wmigda/tsetlini-go/params"
	"github.com/wmigda/tsetlini-go/result"
	"github.com/wmigda/tsetlini-go/state"
	"github.com/wmigda/tsetlini-go/tastate"
	"github.com/wmigda/tsetlini-go/vote"
	"github.com/wmigda/tsetlini-go/workerpool"
)

// ClassifierClassic is the byte-per-feature multi-class classifier
// (spec §4's "classic" representation). Estimators start Fresh (no
// dimensions, no state) and become Fitted on first successful Fit or
// PartialFit call; see spec §4.9.
type ClassifierClassic struct {
	core *classifierCore
}

// NewClassifierClassic constructs a Fresh estimator. sink may be nil
// (defaults to events.NopSink{}).
func NewClassifierClassic(p params.Classifier, sink events.Sink) *ClassifierClassic {
	return &ClassifierClassic{core: newClassifierCore(p, sink)}
}

// SetSink replaces the event sink, e.g. after LoadClassifierClassic.
func (e *ClassifierClassic) SetSink(sink events.Sink) { e.core.sink = sink }

// IsFitted reports whether the estimator has moved past Fresh.
func (e *ClassifierClassic) IsFitted() bool { return e.core.fitted }

// ReadParams returns the estimator's current hyperparameters, including
// NumberOfLabels/NumberOfFeatures once Fitted.
func (e *ClassifierClassic) ReadParams() params.Classifier { return e.core.p }

// Fit trains for epochs epochs. On a Fresh estimator this derives
// number_of_labels (max(maxLabels, max(y)+1)) and number_of_features
// (len(X[0])) and allocates state; on a Fitted estimator X/y must be
// compatible with the already-fixed dimensions. maxLabels may be 0 to
// derive purely from y.
func (e *ClassifierClassic) Fit(X [][]byte, y []int, maxLabels, epochs int) result.Either[struct{}] {
	return e.trainCommon(X, y, maxLabels, epochs)
}

// PartialFit behaves identically to Fit: both initialize dimensions on
// a Fresh estimator and continue training compatible-shaped batches on
// a Fitted one. The two names are kept distinct at the API boundary
// because spec §4.9 names them separately, but there is no behavioral
// difference once "Fresh vs Fitted" is accounted for.
func (e *ClassifierClassic) PartialFit(X [][]byte, y []int, maxLabels, epochs int) result.Either[struct{}] {
	return e.trainCommon(X, y, maxLabels, epochs)
}

func (e *ClassifierClassic) trainCommon(X [][]byte, y []int, maxLabels, epochs int) result.Either[struct{}] {
	cols, err := validateClassicX(X)
	if err != nil {
		return result.Fail[struct{}](result.Wrap(result.ValueError, err, "invalid X"))
	}
	samples := classicSamples{x: X, numFeatures: cols, tileSize: e.core.p.ClauseOutputTileSize}
	if err := e.core.fit(samples, y, maxLabels, epochs); err != nil {
		return result.Fail[struct{}](asFailure(err))
	}
	return result.Ok(struct{}{})
}

// Predict classifies a single sample, returning the argmax label.
func (e *ClassifierClassic) Predict(x []byte) result.Either[int] {
	votes, err := e.decisionFunction(x)
	if err != nil {
		return result.Fail[int](asFailure(err))
	}
	return result.Ok(vote.Argmax(votes))
}

// DecisionFunction returns the clipped per-label votes for a single
// sample, the basis Predict argmaxes over.
func (e *ClassifierClassic) DecisionFunction(x []byte) result.Either[[]int] {
	votes, err := e.decisionFunction(x)
	if err != nil {
		return result.Fail[[]int](asFailure(err))
	}
	return result.Ok(votes)
}

func (e *ClassifierClassic) decisionFunction(x []byte) ([]int, error) {
	if !e.core.fitted {
		return nil, result.New(result.NotFitted, "predict called on a Fresh estimator")
	}
	if len(x) != e.core.numberOfFeatures {
		return nil, featureCountMismatch(len(x), e.core.numberOfFeatures)
	}
	for k, v := range x {
		if v != 0 && v != 1 {
			return nil, result.Newf(result.ValueError, "x[%d]=%d, want 0 or 1", k, v)
		}
	}
	samples := classicSamples{x: [][]byte{x}, numFeatures: len(x), tileSize: e.core.p.ClauseOutputTileSize}
	return e.core.votesFor(samples, 0), nil
}

// Evaluate reports classification accuracy of the fitted estimator over
// X/y.
func (e *ClassifierClassic) Evaluate(X [][]byte, y []int) result.Either[float64] {
	if !e.core.fitted {
		return result.Fail[float64](result.New(result.NotFitted, "evaluate called on a Fresh estimator"))
	}
	if len(X) != len(y) {
		return result.Fail[float64](result.Newf(result.ValueError, "len(X)=%d does not match len(y)=%d", len(X), len(y)))
	}
	cols, err := validateClassicX(X)
	if err != nil {
		return result.Fail[float64](result.Wrap(result.ValueError, err, "invalid X"))
	}
	if cols != e.core.numberOfFeatures {
		return result.Fail[float64](result.Wrap(result.ValueError, featureCountMismatch(cols, e.core.numberOfFeatures), "invalid X"))
	}
	samples := classicSamples{x: X, numFeatures: cols, tileSize: e.core.p.ClauseOutputTileSize}
	correct := 0
	for i := range X {
		if e.core.predict(samples, i) == y[i] {
			correct++
		}
	}
	return result.Ok(float64(correct) / float64(len(X)))
}

// CloneState returns a deep copy of the internal TA state.
func (e *ClassifierClassic) CloneState() result.Either[*tastate.State] {
	if !e.core.fitted {
		return result.Fail[*tastate.State](result.New(result.NotFitted, "clone_state called on a Fresh estimator"))
	}
	return result.Ok(e.core.ta.Clone())
}

// SaveState serializes params, TA state, and both PRNG streams to the
// spec §6 wire format.
func (e *ClassifierClassic) SaveState() result.Either[[]byte] {
	if !e.core.fitted {
		return result.Fail[[]byte](result.New(result.NotFitted, "save_state called on a Fresh estimator"))
	}
	data, err := buildDocument(classifierParamsMap(e.core.p), e.core.ta, e.core.irng, e.core.frng)
	if err != nil {
		return result.Fail[[]byte](result.Wrap(result.BadJSON, err, "encode state"))
	}
	return result.Ok(data)
}

// LoadClassifierClassic rebuilds a Fitted estimator from SaveState's
// output. The estimator's number_of_labels/number_of_features are
// recovered from the decoded TA state's shape and re-derived against
// the decoded params.
func LoadClassifierClassic(data []byte, sink events.Sink) result.Either[*ClassifierClassic] {
	doc, err := parseDocument(data)
	if err != nil {
		return failBadState[*ClassifierClassic](err)
	}
	pEither := params.FromJSON(doc.Params)
	if pEither.IsLeft() {
		f, _ := pEither.Left()
		return result.Fail[*ClassifierClassic](f)
	}
	p, _ := pEither.Right()

	numberOfClauses := len(doc.TAState.Data) / 2
	numberOfLabels := numberOfClauses / p.ClausesPerLabel

	ta, err := state.DecodeTAState(doc.TAState, doc.Signs, doc.Weights, p.NumberOfStates, p.Weighted, int32(p.MaxWeight))
	if err != nil {
		return failBadState[*ClassifierClassic](err)
	}
	p.NumberOfFeatures = ta.Cols()
	p.NumberOfLabels = numberOfLabels

	e := NewClassifierClassic(p, sink)
	e.core.ta = ta
	e.core.irng = state.DecodeGen(doc.IGen)
	e.core.frng = state.DecodeFloatGen(doc.FGen)
	e.core.pool = workerpool.New(p.NJobs)
	e.core.numberOfFeatures = ta.Cols()
	e.core.numberOfLabels = numberOfLabels
	e.core.fitted = true

	return result.Ok(e)
}
