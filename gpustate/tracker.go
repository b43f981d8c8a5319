package gpustate

// AllSubresources selects every subresource of a resource. Passing it to
// [Tracker.SetSubresourceState] or [Batcher.Require] is equivalent to
// addressing the whole resource at once.
const AllSubresources = -1

// Tracker records the last known GPU access state of a resource.
//
// A resource may consist of several independently transitionable
// subresources. Tracker keeps a single shared state while every subresource
// agrees and promotes lazily to per-subresource storage on the first write
// that makes one subresource diverge. Exactly one representation is
// authoritative at any time; [Tracker.SetState] is the only transition back
// to the shared one.
//
// Tracker performs one allocation, inside [Tracker.Init]; promotion writes
// into that storage and never reallocates. Memory is returned only by
// [Tracker.Release].
//
// Tracker is not safe for concurrent use. Each instance belongs to the
// single recording context that currently owns the resource; callers that
// record from multiple goroutines must confine or lock the resource
// themselves.
type Tracker[S comparable] struct {
	// invalid is the caller-supplied sentinel meaning "unknown". It is
	// never a real observed state.
	invalid S

	// uniform is the whole-resource state, authoritative only while
	// perSub is false.
	uniform S

	// sub is the per-subresource state table, authoritative only while
	// perSub is true. Fixed length once allocated by Init.
	sub []S

	// perSub selects the authoritative representation.
	perSub bool
}

// NewTracker returns a tracker that uses invalid as its "unknown" sentinel.
// The tracker starts uninitialized; call [Tracker.Init] before use.
func NewTracker[S comparable](invalid S) Tracker[S] {
	return Tracker[S]{invalid: invalid, uniform: invalid}
}

// Init prepares the tracker for a resource with subresourceCount
// subresources, all starting in initial.
//
// When perSubresourceTracking is true and the resource has more than one
// subresource, the per-subresource table is allocated here; it stays dormant
// until the first divergent write. Resources with a single subresource never
// get the table.
//
// Init panics if subresourceCount is not positive or if the table is still
// allocated from a previous Init; call [Tracker.Release] first to
// re-initialize, e.g. after a resource resize.
func (t *Tracker[S]) Init(subresourceCount int, initial S, perSubresourceTracking bool) {
	if subresourceCount <= 0 {
		panic("gpustate: subresource count must be positive")
	}
	if len(t.sub) != 0 {
		panic("gpustate: tracker already initialized, call Release first")
	}

	if perSubresourceTracking && subresourceCount > 1 {
		t.sub = make([]S, subresourceCount)
		if checksEnabled {
			fill(t.sub, t.invalid)
		}
	}

	t.perSub = false
	t.uniform = initial
}

// IsInitialized reports whether the tracker holds any state: a known
// whole-resource state or an allocated per-subresource table.
func (t *Tracker[S]) IsInitialized() bool {
	return t.uniform != t.invalid || len(t.sub) != 0
}

// Release drops all tracked state and frees the per-subresource table,
// returning the tracker to its constructed state. Release is idempotent;
// the tracker may be initialized again afterwards.
func (t *Tracker[S]) Release() {
	t.uniform = t.invalid
	t.sub = nil
	t.perSub = false
}

// AllSubresourcesSame reports whether every subresource currently shares
// the whole-resource state.
func (t *Tracker[S]) AllSubresourcesSame() bool {
	return !t.perSub
}

// SubresourceCount returns the length of the allocated per-subresource
// table. It is 0 when per-subresource tracking was not requested at Init,
// regardless of how many subresources the resource really has.
func (t *Tracker[S]) SubresourceCount() int {
	return len(t.sub)
}

// CheckState reports whether the entire resource is in state s. In the
// per-subresource representation every entry is checked, so the cost is
// proportional to the subresource count.
func (t *Tracker[S]) CheckState(s S) bool {
	if !t.perSub {
		return t.uniform == s
	}
	for _, cur := range t.sub {
		if cur != s {
			return false
		}
	}
	return true
}

// SubresourceState returns the state of the subresource at index. While all
// subresources share one state any index is valid; otherwise index must lie
// in [0, SubresourceCount()) and SubresourceState panics when it does not.
func (t *Tracker[S]) SubresourceState(index int) S {
	if !t.perSub {
		return t.uniform
	}
	if index < 0 || index >= len(t.sub) {
		panic("gpustate: subresource index out of range")
	}
	return t.sub[index]
}

// SetState records state for the whole resource. This is the only
// transition back to the shared representation; the per-subresource table,
// if allocated, goes dormant.
func (t *Tracker[S]) SetState(s S) {
	t.perSub = false
	t.uniform = s
	if checksEnabled {
		// The table must not be read until the next promotion.
		fill(t.sub, t.invalid)
	}
}

// SetSubresourceState records state for a single subresource. Passing
// [AllSubresources], or calling it on a resource without per-subresource
// granularity (single subresource, or tracking not requested at Init), is
// the same as calling [Tracker.SetState].
//
// The first write addressing a real subresource promotes the tracker: the
// current shared state is copied into every table entry and the table
// becomes authoritative. The copy happens once per promotion; later writes
// touch only their own entry.
//
// SetSubresourceState panics when index is neither [AllSubresources] nor
// within [0, SubresourceCount()) of an active table.
func (t *Tracker[S]) SetSubresourceState(index int, s S) {
	if index == AllSubresources || len(t.sub) <= 1 {
		t.SetState(s)
		return
	}
	if index < 0 || index >= len(t.sub) {
		panic("gpustate: subresource index out of range")
	}

	if !t.perSub {
		fill(t.sub, t.uniform)
		t.perSub = true
		if checksEnabled {
			// The shared state must not be read until the next SetState.
			t.uniform = t.invalid
		}
	}

	t.sub[index] = s
}

func fill[S any](s []S, v S) {
	for i := range s {
		s[i] = v
	}
}
