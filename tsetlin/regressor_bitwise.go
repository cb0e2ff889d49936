package tsetlin

import (
	"github.com/wmigda/tsetlini-go/align"
	"github.com/wmigda/tsetlini-go/events"
	"github.com/wmigda/tsetlini-go/params"
	"github.com/wmigda/tsetlini-go/result"
	"github.com/wmigda/tsetlini-go/state"
	"github.com/wmigda/tsetlini-go/tastate"
	"github.com/wmigda/tsetlini-go/workerpool"
)

// RegressorBitwise is the bit-packed scalar regressor, otherwise
// identical to RegressorClassic.
type RegressorBitwise struct {
	core *regressorCore
}

func NewRegressorBitwise(p params.Regressor, sink events.Sink) result.Either[*RegressorBitwise] {
	core, err := newRegressorCore(p, sink)
	if err != nil {
		return result.Fail[*RegressorBitwise](result.Wrap(result.BadJSON, err, "invalid loss_fn"))
	}
	return result.Ok(&RegressorBitwise{core: core})
}

func (e *RegressorBitwise) SetSink(sink events.Sink) { e.core.sink = sink }
func (e *RegressorBitwise) IsFitted() bool           { return e.core.fitted }
func (e *RegressorBitwise) ReadParams() params.Regressor { return e.core.p }

func (e *RegressorBitwise) Fit(X *align.BitMatrix, y []float64, epochs int) result.Either[struct{}] {
	return e.trainCommon(X, y, epochs)
}

func (e *RegressorBitwise) PartialFit(X *align.BitMatrix, y []float64, epochs int) result.Either[struct{}] {
	return e.trainCommon(X, y, epochs)
}

func (e *RegressorBitwise) trainCommon(X *align.BitMatrix, y []float64, epochs int) result.Either[struct{}] {
	if err := validateBitwiseX(X); err != nil {
		return result.Fail[struct{}](result.Wrap(result.ValueError, err, "invalid X"))
	}
	samples := newBitwiseSamples(X)
	if err := e.core.fit(samples, y, epochs); err != nil {
		return result.Fail[struct{}](asFailure(err))
	}
	return result.Ok(struct{}{})
}

func (e *RegressorBitwise) Predict(x *align.BitMatrix) result.Either[int] {
	if !e.core.fitted {
		return result.Fail[int](result.New(result.NotFitted, "predict called on a Fresh estimator"))
	}
	if x.Rows() != 1 {
		return result.Fail[int](result.Newf(result.ValueError, "predict expects a single-row BitMatrix, got %d rows", x.Rows()))
	}
	if err := validateBitwiseX(x); err != nil {
		return result.Fail[int](result.Wrap(result.ValueError, err, "invalid x"))
	}
	if x.Cols() != e.core.numberOfFeatures {
		return result.Fail[int](result.Wrap(result.ValueError, featureCountMismatch(x.Cols(), e.core.numberOfFeatures), "invalid x"))
	}
	samples := newBitwiseSamples(x)
	return result.Ok(e.core.predict(samples, 0))
}

func (e *RegressorBitwise) Evaluate(X *align.BitMatrix, y []float64) result.Either[float64] {
	if !e.core.fitted {
		return result.Fail[float64](result.New(result.NotFitted, "evaluate called on a Fresh estimator"))
	}
	if err := validateRegressorTargets(y, X.Rows(), e.core.p.Threshold); err != nil {
		return result.Fail[float64](result.Wrap(result.ValueError, err, "invalid y"))
	}
	if err := validateBitwiseX(X); err != nil {
		return result.Fail[float64](result.Wrap(result.ValueError, err, "invalid X"))
	}
	if X.Cols() != e.core.numberOfFeatures {
		return result.Fail[float64](result.Wrap(result.ValueError, featureCountMismatch(X.Cols(), e.core.numberOfFeatures), "invalid X"))
	}
	samples := newBitwiseSamples(X)
	var sumAbsErr float64
	for i := 0; i < X.Rows(); i++ {
		v := e.core.predict(samples, i)
		d := float64(v) - y[i]
		if d < 0 {
			d = -d
		}
		sumAbsErr += d
	}
	return result.Ok(sumAbsErr / float64(X.Rows()))
}

func (e *RegressorBitwise) CloneState() result.Either[*tastate.State] {
	if !e.core.fitted {
		return result.Fail[*tastate.State](result.New(result.NotFitted, "clone_state called on a Fresh estimator"))
	}
	return result.Ok(e.core.ta.Clone())
}

func (e *RegressorBitwise) SaveState() result.Either[[]byte] {
	if !e.core.fitted {
		return result.Fail[[]byte](result.New(result.NotFitted, "save_state called on a Fresh estimator"))
	}
	data, err := buildDocument(regressorParamsMap(e.core.p), e.core.ta, e.core.irng, e.core.frng)
	if err != nil {
		return result.Fail[[]byte](result.Wrap(result.BadJSON, err, "encode state"))
	}
	return result.Ok(data)
}

func LoadRegressorBitwise(data []byte, sink events.Sink) result.Either[*RegressorBitwise] {
	doc, err := parseDocument(data)
	if err != nil {
		return failBadState[*RegressorBitwise](err)
	}
	pEither := params.FromJSONRegressor(doc.Params)
	if pEither.IsLeft() {
		f, _ := pEither.Left()
		return result.Fail[*RegressorBitwise](f)
	}
	p, _ := pEither.Right()

	ta, err := state.DecodeTAState(doc.TAState, doc.Signs, doc.Weights, p.NumberOfStates, p.Weighted, int32(p.MaxWeight))
	if err != nil {
		return failBadState[*RegressorBitwise](err)
	}
	p.NumberOfFeatures = ta.Cols()

	built := NewRegressorBitwise(p, sink)
	if built.IsLeft() {
		f, _ := built.Left()
		return result.Fail[*RegressorBitwise](f)
	}
	e, _ := built.Right()
	e.core.ta = ta
	e.core.irng = state.DecodeGen(doc.IGen)
	e.core.frng = state.DecodeFloatGen(doc.FGen)
	e.core.pool = workerpool.New(p.NJobs)
	e.core.numberOfFeatures = ta.Cols()
	e.core.fitted = true

	return result.Ok(e)
}
