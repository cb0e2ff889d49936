package tsetlin

import (
	"github.com/wmigda/tsetlini-go/events"
	"github.com/wmigda/tsetlini-go/params"
	"github.com/wmigda/tsetlini-go/result"
	"github.com/wmigda/tsetlini-go/state"
	"github.com/wmigda/tsetlini-go/tastate"
	"github.com/wmigda/tsetlini-go/workerpool"
)

// RegressorClassic is the byte-per-feature scalar regressor (spec §4's
// single-polarity clause partition voting toward a target in
// [0, threshold]).
type RegressorClassic struct {
	core *regressorCore
}

// NewRegressorClassic constructs a Fresh estimator, or fails BadJSON if
// p.LossFn names an unknown loss function.
func NewRegressorClassic(p params.Regressor, sink events.Sink) result.Either[*RegressorClassic] {
	core, err := newRegressorCore(p, sink)
	if err != nil {
		return result.Fail[*RegressorClassic](result.Wrap(result.BadJSON, err, "invalid loss_fn"))
	}
	return result.Ok(&RegressorClassic{core: core})
}

func (e *RegressorClassic) SetSink(sink events.Sink) { e.core.sink = sink }
func (e *RegressorClassic) IsFitted() bool           { return e.core.fitted }
func (e *RegressorClassic) ReadParams() params.Regressor { return e.core.p }

func (e *RegressorClassic) Fit(X [][]byte, y []float64, epochs int) result.Either[struct{}] {
	return e.trainCommon(X, y, epochs)
}

func (e *RegressorClassic) PartialFit(X [][]byte, y []float64, epochs int) result.Either[struct{}] {
	return e.trainCommon(X, y, epochs)
}

func (e *RegressorClassic) trainCommon(X [][]byte, y []float64, epochs int) result.Either[struct{}] {
	cols, err := validateClassicX(X)
	if err != nil {
		return result.Fail[struct{}](result.Wrap(result.ValueError, err, "invalid X"))
	}
	samples := classicSamples{x: X, numFeatures: cols, tileSize: e.core.p.ClauseOutputTileSize}
	if err := e.core.fit(samples, y, epochs); err != nil {
		return result.Fail[struct{}](asFailure(err))
	}
	return result.Ok(struct{}{})
}

// Predict returns the clipped scalar vote in [0, threshold] for a
// single sample.
func (e *RegressorClassic) Predict(x []byte) result.Either[int] {
	if !e.core.fitted {
		return result.Fail[int](result.New(result.NotFitted, "predict called on a Fresh estimator"))
	}
	if len(x) != e.core.numberOfFeatures {
		return result.Fail[int](result.Wrap(result.ValueError, featureCountMismatch(len(x), e.core.numberOfFeatures), "invalid x"))
	}
	for k, v := range x {
		if v != 0 && v != 1 {
			return result.Fail[int](result.Newf(result.ValueError, "x[%d]=%d, want 0 or 1", k, v))
		}
	}
	samples := classicSamples{x: [][]byte{x}, numFeatures: len(x), tileSize: e.core.p.ClauseOutputTileSize}
	return result.Ok(e.core.predict(samples, 0))
}

// Evaluate reports mean absolute error of the fitted estimator over
// X/y.
func (e *RegressorClassic) Evaluate(X [][]byte, y []float64) result.Either[float64] {
	if !e.core.fitted {
		return result.Fail[float64](result.New(result.NotFitted, "evaluate called on a Fresh estimator"))
	}
	if err := validateRegressorTargets(y, len(X), e.core.p.Threshold); err != nil {
		return result.Fail[float64](result.Wrap(result.ValueError, err, "invalid y"))
	}
	cols, err := validateClassicX(X)
	if err != nil {
		return result.Fail[float64](result.Wrap(result.ValueError, err, "invalid X"))
	}
	if cols != e.core.numberOfFeatures {
		return result.Fail[float64](result.Wrap(result.ValueError, featureCountMismatch(cols, e.core.numberOfFeatures), "invalid X"))
	}
	samples := classicSamples{x: X, numFeatures: cols, tileSize: e.core.p.ClauseOutputTileSize}
	var sumAbsErr float64
	for i := range X {
		v := e.core.predict(samples, i)
		d := float64(v) - y[i]
		if d < 0 {
			d = -d
		}
		sumAbsErr += d
	}
	return result.Ok(sumAbsErr / float64(len(X)))
}

func (e *RegressorClassic) CloneState() result.Either[*tastate.State] {
	if !e.core.fitted {
		return result.Fail[*tastate.State](result.New(result.NotFitted, "clone_state called on a Fresh estimator"))
	}
	return result.Ok(e.core.ta.Clone())
}

func (e *RegressorClassic) SaveState() result.Either[[]byte] {
	if !e.core.fitted {
		return result.Fail[[]byte](result.New(result.NotFitted, "save_state called on a Fresh estimator"))
	}
	data, err := buildDocument(regressorParamsMap(e.core.p), e.core.ta, e.core.irng, e.core.frng)
	if err != nil {
		return result.Fail[[]byte](result.Wrap(result.BadJSON, err, "encode state"))
	}
	return result.Ok(data)
}

func LoadRegressorClassic(data []byte, sink events.Sink) result.Either[*RegressorClassic] {
	doc, err := parseDocument(data)
	if err != nil {
		return failBadState[*RegressorClassic](err)
	}
	pEither := params.FromJSONRegressor(doc.Params)
	if pEither.IsLeft() {
		f, _ := pEither.Left()
		return result.Fail[*RegressorClassic](f)
	}
	p, _ := pEither.Right()

	ta, err := state.DecodeTAState(doc.TAState, doc.Signs, doc.Weights, p.NumberOfStates, p.Weighted, int32(p.MaxWeight))
	if err != nil {
		return failBadState[*RegressorClassic](err)
	}
	p.NumberOfFeatures = ta.Cols()

	built := NewRegressorClassic(p, sink)
	if built.IsLeft() {
		f, _ := built.Left()
		return result.Fail[*RegressorClassic](f)
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
