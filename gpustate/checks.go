//go:build !gpustatechecks

package gpustate

// checksEnabled controls poisoning of whichever tracker representation is
// dormant. Disabled by default; the authoritative-mode flag already keeps
// the dormant storage unreachable through the API.
const checksEnabled = false
