package gpustate

import "fmt"

// ResourceState identifies a GPU pipeline access state of a resource or of
// a single subresource. The zero value is [StateInvalid], the "unknown"
// sentinel used by trackers and never a real observed state.
type ResourceState int32

const (
	// StateInvalid marks an unknown or non-authoritative state.
	StateInvalid ResourceState = iota
	// StateCommon is the neutral state resources are created in.
	StateCommon
	// StateCopySource allows transfer reads.
	StateCopySource
	// StateCopyDest allows transfer writes.
	StateCopyDest
	// StateRenderTarget allows color attachment output.
	StateRenderTarget
	// StateDepthWrite allows depth-stencil attachment writes.
	StateDepthWrite
	// StateDepthRead allows read-only depth-stencil access.
	StateDepthRead
	// StateShaderResource allows sampled or constant reads from shaders.
	StateShaderResource
	// StateUnorderedAccess allows unordered (storage) reads and writes.
	StateUnorderedAccess
	// StateIndirectArgument allows indirect draw/dispatch argument reads.
	StateIndirectArgument
	// StatePresent is required before handing a swapchain image to the
	// presentation engine.
	StatePresent
)

// String returns the string representation of ResourceState.
func (s ResourceState) String() string {
	switch s {
	case StateInvalid:
		return "Invalid"
	case StateCommon:
		return "Common"
	case StateCopySource:
		return "CopySource"
	case StateCopyDest:
		return "CopyDest"
	case StateRenderTarget:
		return "RenderTarget"
	case StateDepthWrite:
		return "DepthWrite"
	case StateDepthRead:
		return "DepthRead"
	case StateShaderResource:
		return "ShaderResource"
	case StateUnorderedAccess:
		return "UnorderedAccess"
	case StateIndirectArgument:
		return "IndirectArgument"
	case StatePresent:
		return "Present"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(s))
	}
}

// IsReadOnly reports whether s never writes to the resource, meaning two
// read-only states can overlap without an intervening barrier.
func (s ResourceState) IsReadOnly() bool {
	switch s {
	case StateCopySource, StateDepthRead, StateShaderResource, StateIndirectArgument, StatePresent:
		return true
	default:
		return false
	}
}

// NewResourceTracker returns a [Tracker] keyed by [ResourceState] with
// [StateInvalid] as its sentinel.
func NewResourceTracker() Tracker[ResourceState] {
	return NewTracker(StateInvalid)
}
