// Package params is the hyperparameter store (C3): it accepts either a
// JSON object or a map[string]any, merges the given keys over a
// defaults table grounded on original_source/lib/src/tsetlini_params.cpp,
// resolves the two "auto" values (n_jobs, random_state), and validates
// every numeric/enum constraint spec §4.3 names. Unknown keys are
// rejected the same way a C++ variant-map lookup miss would be: as a
// bad-config error, realized here via mapstructure's ErrorUnused mode.
package params

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"github.com/wmigda/tsetlini-go/capability"
	"github.com/wmigda/tsetlini-go/result"
)

// MaxWeightCeiling mirrors the original's use of INT_MAX as the default
// max_weight: effectively unbounded for any realistic epoch count.
const MaxWeightCeiling = math.MaxInt32

var validCountingTypes = map[string]bool{
	"auto": true, "int8": true, "int16": true, "int32": true,
}

var validTileSizes = map[int]bool{16: true, 32: true, 64: true, 128: true}

var validLossFns = map[string]bool{
	"MSE": true, "MAE": true, "L1": true, "L2": true, "L1+2": true, "berHu": true,
}

// decodeStrict merges m over the already-populated defaults in out,
// failing on any key in m that doesn't correspond to a field of out.
func decodeStrict(m map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "build decoder")
	}
	return dec.Decode(m)
}

// resolveRandomSeed draws a fresh seed from OS entropy, matching
// spec §4.3's "random_state unset ⇒ fill from OS entropy".
func resolveRandomSeed() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, errors.Wrap(err, "read OS entropy for random_state")
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// resolveNJobs applies spec §4.3's "n_jobs == -1 ⇒ max(1, hardware
// concurrency)" rule.
func resolveNJobs(nJobs int) int {
	if nJobs == -1 {
		return capability.Parallelism()
	}
	return nJobs
}

func jsonToMap(data []byte) (map[string]any, error) {
	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}
