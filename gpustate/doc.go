// Package gpustate tracks the current GPU-pipeline access state of
// renderable resources so a backend can decide, before recording a command,
// whether a transition barrier is required and what the "before" state is.
//
// The central type is [Tracker], a generic state store for a resource made
// of one or more independently transitionable subresources (mip levels,
// array slices). While every subresource shares one state the tracker keeps
// a single value; the first write that makes a subresource diverge promotes
// it to a per-subresource table that was allocated up front. The promotion
// copies the shared state once, and a later whole-resource write is the only
// way back to the shared representation.
//
// [Batcher] implements the contract with the barrier-emitting layer: it
// compares required states against a tracker, queues [Transition] records
// for the states that differ, updates the tracker with the new states and
// hands the queued transitions out in one batch.
//
// # Usage
//
//	tracker := gpustate.NewResourceTracker()
//	tracker.Init(mips*layers, gpustate.StateCommon, true)
//
//	var batch gpustate.Batcher
//	batch.Require(&tracker, gpustate.AllSubresources, gpustate.StateCopyDest)
//	batch.Require(&tracker, 2, gpustate.StateShaderResource)
//	for _, tr := range batch.Flush() {
//	    // translate tr.Before -> tr.After into a backend barrier
//	}
//
// A tracker belongs to the single recording context that owns its resource;
// the package does no locking of its own.
package gpustate
