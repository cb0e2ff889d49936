// Package capability probes the runtime environment for the handful of
// facts the parameter store and the event sink need: how many workers
// "n_jobs = -1" (auto) should resolve to, and which vector extensions
// the host CPU advertises (informational only — the clause kernel and
// automata updater in this module are portable scalar/bit-parallel Go,
// not hand-written SIMD, but callers composing this core with a SIMD
// dispatch layer benefit from knowing what the host supports).
//
// Grounded on hwy/dispatch_amd64.go and hwy/dispatch_arm64.go, which use
// golang.org/x/sys/cpu the same way.
package capability

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Parallelism resolves n_jobs == -1 to a concrete worker count, per spec
// §4.3: "n_jobs == -1 => set to max(1, hardware_concurrency)".
func Parallelism() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return n
}

// VectorTier is a coarse, human-readable description of the widest
// integer SIMD extension the host CPU advertises, used only in
// diagnostic events.
type VectorTier string

const (
	TierAVX512 VectorTier = "avx512"
	TierAVX2   VectorTier = "avx2"
	TierNEON   VectorTier = "neon"
	TierScalar VectorTier = "scalar"
)

// DetectVectorTier reports the best available tier without requiring
// GOEXPERIMENT=simd; it only inspects feature bits for logging.
func DetectVectorTier() VectorTier {
	switch runtime.GOARCH {
	case "amd64":
		if cpu.X86.HasAVX512F {
			return TierAVX512
		}
		if cpu.X86.HasAVX2 {
			return TierAVX2
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			return TierNEON
		}
	}
	return TierScalar
}
