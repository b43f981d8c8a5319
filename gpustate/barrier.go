package gpustate

import "log/slog"

// Transition describes one pending state change that the backend must guard
// with a barrier before the next command executes.
type Transition struct {
	// Subresource is the linear subresource index the transition applies
	// to, or [AllSubresources] for the whole resource.
	Subresource int

	// Before is the state the resource is leaving.
	Before ResourceState

	// After is the state the resource must be in next.
	After ResourceState
}

// Batcher collects the transitions required to bring a resource into the
// states upcoming commands need. Callers ask for a target state with
// [Batcher.Require]; the batcher compares it against the tracker, queues a
// [Transition] when they differ and records the new state in the tracker.
// [Batcher.Flush] hands the queued transitions to the barrier-emitting
// backend in one batch, the way Vulkan groups image memory barriers into a
// single pipeline barrier command.
//
// The zero value is ready to use. A Batcher belongs to a single recording
// context, like the trackers it operates on.
type Batcher struct {
	pending []Transition
}

// Require ensures that subresource sub of the resource tracked by tr will
// be in state after. sub may be [AllSubresources] to address the whole
// resource; requiring the whole resource while subresource states diverge
// queues one transition per differing subresource and returns the tracker
// to the shared representation. Requiring a single subresource of a
// resource without per-subresource granularity queues a whole-resource
// transition instead, matching the collapsed write it records.
//
// States that already match queue nothing and leave the tracker untouched.
func (b *Batcher) Require(tr *Tracker[ResourceState], sub int, after ResourceState) {
	if sub == AllSubresources && !tr.AllSubresourcesSame() {
		for i := 0; i < tr.SubresourceCount(); i++ {
			if before := tr.SubresourceState(i); before != after {
				b.push(i, before, after)
			}
		}
		tr.SetState(after)
		return
	}

	idx := sub
	if idx == AllSubresources {
		// Any index reads the shared state here.
		idx = 0
	}
	before := tr.SubresourceState(idx)
	if before == after {
		// Matching states need neither a barrier nor a write; skipping
		// the write also avoids a pointless promotion.
		return
	}
	if sub != AllSubresources && tr.SubresourceCount() <= 1 {
		// Without per-subresource granularity an indexed write collapses
		// to a whole-resource write, so the barrier must cover the whole
		// resource as well.
		sub = AllSubresources
	}
	b.push(sub, before, after)
	tr.SetSubresourceState(sub, after)
}

func (b *Batcher) push(sub int, before, after ResourceState) {
	b.pending = append(b.pending, Transition{Subresource: sub, Before: before, After: after})
	Logger().Debug("queued resource transition",
		slog.Int("subresource", sub),
		slog.String("before", before.String()),
		slog.String("after", after.String()))
}

// Pending returns the number of queued transitions.
func (b *Batcher) Pending() int { return len(b.pending) }

// Flush returns the queued transitions and resets the batcher. The caller
// translates them into backend barrier commands; an empty result means no
// barrier is needed.
func (b *Batcher) Flush() []Transition {
	out := b.pending
	b.pending = nil
	if len(out) > 0 {
		Logger().Debug("flushed transition batch", slog.Int("count", len(out)))
	}
	return out
}
