package tsetlin

import (
	"github.com/wmigda/tsetlini-go/align"
	"github.com/wmigda/tsetlini-go/events"
	"github.com/wmigda/tsetlini-go/params"
	"github.com/wmigda/tsetlini-go/result"
	"github.com/wmigda/tsetlini-go/state"
	"github.com/wmigda/tsetlini-go/tastate"
	"github.com/wmigda/tsetlini-go/vote"
	"github.com/wmigda/tsetlini-go/workerpool"
)

// ClassifierBitwise is the bit-packed multi-class classifier (spec §4's
// "bitwise" representation), otherwise identical to ClassifierClassic.
type ClassifierBitwise struct {
	core *classifierCore
}

func NewClassifierBitwise(p params.Classifier, sink events.Sink) *ClassifierBitwise {
	return &ClassifierBitwise{core: newClassifierCore(p, sink)}
}

func (e *ClassifierBitwise) SetSink(sink events.Sink) { e.core.sink = sink }
func (e *ClassifierBitwise) IsFitted() bool           { return e.core.fitted }
func (e *ClassifierBitwise) ReadParams() params.Classifier { return e.core.p }

func (e *ClassifierBitwise) Fit(X *align.BitMatrix, y []int, maxLabels, epochs int) result.Either[struct{}] {
	return e.trainCommon(X, y, maxLabels, epochs)
}

func (e *ClassifierBitwise) PartialFit(X *align.BitMatrix, y []int, maxLabels, epochs int) result.Either[struct{}] {
	return e.trainCommon(X, y, maxLabels, epochs)
}

func (e *ClassifierBitwise) trainCommon(X *align.BitMatrix, y []int, maxLabels, epochs int) result.Either[struct{}] {
	if err := validateBitwiseX(X); err != nil {
		return result.Fail[struct{}](result.Wrap(result.ValueError, err, "invalid X"))
	}
	samples := newBitwiseSamples(X)
	if err := e.core.fit(samples, y, maxLabels, epochs); err != nil {
		return result.Fail[struct{}](asFailure(err))
	}
	return result.Ok(struct{}{})
}

// Predict classifies a single bit-packed row (a 1-row BitMatrix).
func (e *ClassifierBitwise) Predict(x *align.BitMatrix) result.Either[int] {
	votes, err := e.decisionFunction(x)
	if err != nil {
		return result.Fail[int](asFailure(err))
	}
	return result.Ok(vote.Argmax(votes))
}

func (e *ClassifierBitwise) DecisionFunction(x *align.BitMatrix) result.Either[[]int] {
	votes, err := e.decisionFunction(x)
	if err != nil {
		return result.Fail[[]int](asFailure(err))
	}
	return result.Ok(votes)
}

func (e *ClassifierBitwise) decisionFunction(x *align.BitMatrix) ([]int, error) {
	if !e.core.fitted {
		return nil, result.New(result.NotFitted, "predict called on a Fresh estimator")
	}
	if x.Rows() != 1 {
		return nil, result.Newf(result.ValueError, "predict expects a single-row BitMatrix, got %d rows", x.Rows())
	}
	if err := validateBitwiseX(x); err != nil {
		return nil, err
	}
	if x.Cols() != e.core.numberOfFeatures {
		return nil, featureCountMismatch(x.Cols(), e.core.numberOfFeatures)
	}
	samples := newBitwiseSamples(x)
	return e.core.votesFor(samples, 0), nil
}

func (e *ClassifierBitwise) Evaluate(X *align.BitMatrix, y []int) result.Either[float64] {
	if !e.core.fitted {
		return result.Fail[float64](result.New(result.NotFitted, "evaluate called on a Fresh estimator"))
	}
	if X.Rows() != len(y) {
		return result.Fail[float64](result.Newf(result.ValueError, "len(X)=%d does not match len(y)=%d", X.Rows(), len(y)))
	}
	if err := validateBitwiseX(X); err != nil {
		return result.Fail[float64](result.Wrap(result.ValueError, err, "invalid X"))
	}
	if X.Cols() != e.core.numberOfFeatures {
		return result.Fail[float64](result.Wrap(result.ValueError, featureCountMismatch(X.Cols(), e.core.numberOfFeatures), "invalid X"))
	}
	samples := newBitwiseSamples(X)
	correct := 0
	for i := 0; i < X.Rows(); i++ {
		if e.core.predict(samples, i) == y[i] {
			correct++
		}
	}
	return result.Ok(float64(correct) / float64(X.Rows()))
}

func (e *ClassifierBitwise) CloneState() result.Either[*tastate.State] {
	if !e.core.fitted {
		return result.Fail[*tastate.State](result.New(result.NotFitted, "clone_state called on a Fresh estimator"))
	}
	return result.Ok(e.core.ta.Clone())
}

func (e *ClassifierBitwise) SaveState() result.Either[[]byte] {
	if !e.core.fitted {
		return result.Fail[[]byte](result.New(result.NotFitted, "save_state called on a Fresh estimator"))
	}
	data, err := buildDocument(classifierParamsMap(e.core.p), e.core.ta, e.core.irng, e.core.frng)
	if err != nil {
		return result.Fail[[]byte](result.Wrap(result.BadJSON, err, "encode state"))
	}
	return result.Ok(data)
}

func LoadClassifierBitwise(data []byte, sink events.Sink) result.Either[*ClassifierBitwise] {
	doc, err := parseDocument(data)
	if err != nil {
		return failBadState[*ClassifierBitwise](err)
	}
	pEither := params.FromJSON(doc.Params)
	if pEither.IsLeft() {
		f, _ := pEither.Left()
		return result.Fail[*ClassifierBitwise](f)
	}
	p, _ := pEither.Right()

	numberOfClauses := len(doc.TAState.Data) / 2
	numberOfLabels := numberOfClauses / p.ClausesPerLabel

	ta, err := state.DecodeTAState(doc.TAState, doc.Signs, doc.Weights, p.NumberOfStates, p.Weighted, int32(p.MaxWeight))
	if err != nil {
		return failBadState[*ClassifierBitwise](err)
	}
	p.NumberOfFeatures = ta.Cols()
	p.NumberOfLabels = numberOfLabels

	e := NewClassifierBitwise(p, sink)
	e.core.ta = ta
	e.core.irng = state.DecodeGen(doc.IGen)
	e.core.frng = state.DecodeFloatGen(doc.FGen)
	e.core.pool = workerpool.New(p.NJobs)
	e.core.numberOfFeatures = ta.Cols()
	e.core.numberOfLabels = numberOfLabels
	e.core.fitted = true

	return result.Ok(e)
}
