package params

import (
	"github.com/pkg/errors"

	"github.com/wmigda/tsetlini-go/result"
	"github.com/wmigda/tsetlini-go/tastate"
)

// Classifier holds every hyperparameter of the multi-class classifier,
// plus the two fields (NumberOfLabels, NumberOfFeatures) spec §3 calls
// "derived at first fit" — present on the struct so tsetlin can stash
// them here once known, but rejected as input keys (they have no
// mapstructure name, so decodeStrict reports them as unused).
type Classifier struct {
	NumberOfStates             int    `mapstructure:"number_of_states"`
	Threshold                  int    `mapstructure:"threshold"`
	S                          float64 `mapstructure:"s"`
	ClausesPerLabel            int    `mapstructure:"clauses_per_label"`
	BoostTruePositiveFeedback  bool   `mapstructure:"boost_true_positive_feedback"`
	Weighted                   bool   `mapstructure:"weighted"`
	MaxWeight                  int    `mapstructure:"max_weight"`
	ClauseOutputTileSize       int    `mapstructure:"clause_output_tile_size"`
	NJobs                      int    `mapstructure:"n_jobs"`
	CountingType               string `mapstructure:"counting_type"`
	RandomState                *uint32 `mapstructure:"random_state"`
	Verbose                    bool   `mapstructure:"verbose"`

	// Derived at first fit; zero until then. Rejected as an input key.
	NumberOfLabels   int `mapstructure:"-"`
	NumberOfFeatures int `mapstructure:"-"`
}

// DefaultClassifier returns the defaults table grounded on
// original_source/lib/src/tsetlini_params.cpp's default_classifier_params.
func DefaultClassifier() Classifier {
	return Classifier{
		NumberOfStates:       100,
		Threshold:            15,
		S:                    2.0,
		ClausesPerLabel:      12,
		Weighted:             false,
		MaxWeight:            MaxWeightCeiling,
		ClauseOutputTileSize: 16,
		NJobs:                -1,
		CountingType:         "auto",
		Verbose:              false,
	}
}

// FromJSON decodes a classifier params object from JSON, merges it over
// DefaultClassifier, resolves n_jobs/random_state, and validates.
func FromJSON(data []byte) result.Either[Classifier] {
	m, err := jsonToMap(data)
	if err != nil {
		return result.Fail[Classifier](result.Wrap(result.BadJSON, err, "parse classifier params JSON"))
	}
	return FromMap(m)
}

// FromMap is the same pipeline as FromJSON starting from an already
// decoded map, e.g. when a caller built params programmatically.
func FromMap(m map[string]any) result.Either[Classifier] {
	p := DefaultClassifier()
	if err := decodeStrict(m, &p); err != nil {
		return result.Fail[Classifier](result.Wrap(result.BadJSON, err, "decode classifier params"))
	}

	resolved, err := p.resolve()
	if err != nil {
		return result.Fail[Classifier](result.Wrap(result.BadJSON, err, "resolve classifier params"))
	}

	if err := resolved.validate(); err != nil {
		return result.Fail[Classifier](result.Wrap(result.ValueError, err, "invalid classifier params"))
	}

	return result.Ok(resolved)
}

func (p Classifier) resolve() (Classifier, error) {
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

func (p Classifier) validate() error {
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
	case p.ClausesPerLabel < 4:
		return errors.Errorf("clauses_per_label must be >= 4, got %d", p.ClausesPerLabel)
	case p.ClausesPerLabel%4 != 0:
		return errors.Errorf("clauses_per_label must be divisible by 4, got %d", p.ClausesPerLabel)
	}
	return nil
}
