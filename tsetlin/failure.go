package tsetlin

import "github.com/wmigda/tsetlini-go/result"

// asFailure normalizes an error returned by classifierCore.fit/
// regressorCore.fit into a result.Failure: errors already carrying a
// code (result.Failure, from explicit NotFitted/label-growth checks)
// pass through unchanged, everything else (validate.go's pkg/errors
// values: malformed X/y, dimension mismatches) is classified
// ValueError.
func asFailure(err error) result.Failure {
	if f, ok := err.(result.Failure); ok {
		return f
	}
	return result.Wrap(result.ValueError, err, "invalid input")
}
