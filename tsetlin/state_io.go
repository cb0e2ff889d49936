package tsetlin

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/wmigda/tsetlini-go/params"
	"github.com/wmigda/tsetlini-go/result"
	"github.com/wmigda/tsetlini-go/rng"
	"github.com/wmigda/tsetlini-go/state"
	"github.com/wmigda/tsetlini-go/tastate"
)

// classifierParamsMap/regressorParamsMap re-key a params struct onto
// its mapstructure wire names, since encoding/json only honors json
// tags and these structs are tagged for mapstructure (the params
// package's own decode path). Kept in lockstep with
// params.Classifier/params.Regressor's mapstructure tags.
func classifierParamsMap(p params.Classifier) map[string]any {
	return map[string]any{
		"number_of_states":             p.NumberOfStates,
		"threshold":                    p.Threshold,
		"s":                            p.S,
		"clauses_per_label":            p.ClausesPerLabel,
		"boost_true_positive_feedback": p.BoostTruePositiveFeedback,
		"weighted":                     p.Weighted,
		"max_weight":                   p.MaxWeight,
		"clause_output_tile_size":      p.ClauseOutputTileSize,
		"n_jobs":                       p.NJobs,
		"counting_type":                p.CountingType,
		"random_state":                 *p.RandomState,
		"verbose":                      p.Verbose,
	}
}

func regressorParamsMap(p params.Regressor) map[string]any {
	return map[string]any{
		"number_of_states":             p.NumberOfStates,
		"threshold":                    p.Threshold,
		"s":                            p.S,
		"clauses":                      p.Clauses,
		"boost_true_positive_feedback": p.BoostTruePositiveFeedback,
		"weighted":                     p.Weighted,
		"max_weight":                   p.MaxWeight,
		"clause_output_tile_size":      p.ClauseOutputTileSize,
		"n_jobs":                       p.NJobs,
		"counting_type":                p.CountingType,
		"random_state":                 *p.RandomState,
		"loss_fn":                      p.LossFn,
		"loss_fn_C1":                   p.LossFnC1,
		"box_muller":                   p.BoxMuller,
		"verbose":                      p.Verbose,
	}
}

func buildDocument(paramsMap map[string]any, ta *tastate.State, irng *rng.IntRNG, frng *rng.FloatRNG) ([]byte, error) {
	rawParams, err := json.Marshal(paramsMap)
	if err != nil {
		return nil, errors.Wrap(err, "marshal params for state document")
	}
	tas, signs, weights := state.EncodeTAState(ta)
	doc := state.Document{
		Params:  rawParams,
		TAState: tas,
		Signs:   signs,
		Weights: weights,
		IGen:    state.EncodeGen(irng),
		FGen:    state.EncodeFloatGen(frng),
	}
	return state.Marshal(doc)
}

func parseDocument(data []byte) (state.Document, error) {
	return state.Unmarshal(data)
}

func failBadState[T any](err error) result.Either[T] {
	return result.Fail[T](result.Wrap(result.BadJSON, err, "decode estimator state"))
}
