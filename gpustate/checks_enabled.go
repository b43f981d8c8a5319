//go:build gpustatechecks

package gpustate

// checksEnabled poisons the dormant tracker representation with the invalid
// sentinel so that a stale read surfaces as "unknown" in development builds
// instead of a plausible old state.
const checksEnabled = true
