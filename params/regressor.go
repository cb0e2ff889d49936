package params

import (
	"github.com/pkg/errors"

	"github.com/wmigda/tsetlini-go/result"
	"github.com/wmigda/tsetlini-go/tastate"
)

// Regressor holds every hyperparameter of the scalar regressor. It
// recovers loss_fn_C1 and box_muller from
// original_source/lib/src/tsetlini_params.cpp's defaults table — both
// present in the original, dropped from spec.md's prose table, but
// required to drive the loss-probability schedule (§4.7 expansion).
type Regressor struct {
	NumberOfStates             int     `mapstructure:"number_of_states"`
	Threshold                  int     `mapstructure:"threshold"`
	S                          float64 `mapstructure:"s"`
	Clauses                    int     `mapstructure:"clauses"`
	BoostTruePositiveFeedback  bool    `mapstructure:"boost_true_positive_feedback"`
	Weighted                   bool    `mapstructure:"weighted"`
	MaxWeight                  int     `mapstructure:"max_weight"`
	ClauseOutputTileSize       int     `mapstructure:"clause_output_tile_size"`
	NJobs                      int     `mapstructure:"n_jobs"`
	CountingType               string  `mapstructure:"counting_type"`
	RandomState                *uint32 `mapstructure:"random_state"`
	LossFn                     string  `mapstructure:"loss_fn"`
	LossFnC1                   float64 `mapstructure:"loss_fn_C1"`
	BoxMuller                  bool    `mapstructure:"box_muller"`
	Verbose                    bool    `mapstructure:"verbose"`

	NumberOfFeatures int `mapstructure:"-"`
}

// DefaultRegressor returns the defaults table grounded on
// original_source/lib/src/tsetlini_params.cpp's default_regressor_params.
func DefaultRegressor() Regressor {
	return Regressor{
		NumberOfStates:       100,
		Threshold:            15,
		S:                    2.0,
		Clauses:              20,
		Weighted:             true,
		MaxWeight:            MaxWeightCeiling,
		ClauseOutputTileSize: 16,
		NJobs:                -1,
		CountingType:         "auto",
		LossFn:               "MSE",
		LossFnC1:             0.0,
		BoxMuller:            false,
		Verbose:              false,
	}
}

// FromJSONRegressor decodes a regressor params object from JSON, merges
// it over DefaultRegressor, resolves n_jobs/random_state, and validates.
func FromJSONRegressor(data []byte) result.Either[Regressor] {
	m, err := jsonToMap(data)
	if err != nil {
		return result.Fail[Regressor](result.Wrap(result.BadJSON, err, "parse regressor params JSON"))
	}
	return FromMapRegressor(m)
}

// FromMapRegressor is FromJSONRegressor's pipeline starting from an
// already-decoded map.
func FromMapRegressor(m map[string]any) result.Either[Regressor] {
	p := DefaultRegressor()
	if err := decodeStrict(m, &p); err != nil {
		return result.Fail[Regressor](result.Wrap(result.BadJSON, err, "decode regressor params"))
	}

	resolved, err := p.resolve()
	if err != nil {
		return result.Fail[Regressor](result.Wrap(result.BadJSON, err, "resolve regressor params"))
	}

	if err := resolved.validate(); err != nil {
		return result.Fail[Regressor](result.Wrap(result.ValueError, err, "invalid regressor params"))
	}

	return result.Ok(resolved)
}

func (p Regressor) resolve() (Regressor, error) {
	p.NJobs = resolveNJobs(p.NJobs)
	if p.RandomState == nil {
		seed, err := resolveRandomSeed()
		if err != nil {
			return p, err
		}
		p.RandomState = &seed
	}
	return p, nil
}

func (p Regressor) validate() error {
	switch {
	case p.S < 1.0:
		return errors.Errorf("s must be >= 1.0, got %v", p.S)
	case p.Threshold < 1:
		return errors.Errorf("threshold must be >= 1, got %d", p.Threshold)
	case p.NumberOfStates < 1:
		return errors.Errorf("number_of_states must be >= 1, got %d", p.NumberOfStates)
	case p.MaxWeight < 1:
		return errors.Errorf("max_weight must be >= 1, got %d", p.MaxWeight)
	case p.NJobs < 1:
		return errors.Errorf("n_jobs must resolve to >= 1, got %d", p.NJobs)
	case !validCountingTypes[p.CountingType]:
		return errors.Errorf("counting_type %q is not one of auto, int8, int16, int32", p.CountingType)
	case p.CountingType == "int8" && p.NumberOfStates > tastate.MaxCounterMagnitude(tastate.Width8):
		return errors.Errorf("number_of_states=%d exceeds the counting_type=int8 ceiling of %d", p.NumberOfStates, tastate.MaxCounterMagnitude(tastate.Width8))
	case p.CountingType == "int16" && p.NumberOfStates > tastate.MaxCounterMagnitude(tastate.Width16):
		return errors.Errorf("number_of_states=%d exceeds the counting_type=int16 ceiling of %d", p.NumberOfStates, tastate.MaxCounterMagnitude(tastate.Width16))
	case !validTileSizes[p.ClauseOutputTileSize]:
		return errors.Errorf("clause_output_tile_size %d is not one of 16, 32, 64, 128", p.ClauseOutputTileSize)
	case p.Clauses < 2:
		return errors.Errorf("clauses must be >= 2, got %d", p.Clauses)
	case p.Clauses%2 != 0:
		return errors.Errorf("clauses must be divisible by 2, got %d", p.Clauses)
	case !validLossFns[p.LossFn]:
		return errors.Errorf("loss_fn %q is not one of MSE, MAE, L1, L2, L1+2, berHu", p.LossFn)
	}
	return nil
}
