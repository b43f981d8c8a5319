package native

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/WoW55QQ/FlaxEngine/gpustate"
)

// Buffer errors.
var (
	// ErrInvalidBufferSize is returned when buffer size is invalid.
	ErrInvalidBufferSize = errors.New("native: invalid buffer size")
)

// Buffer wraps a hal.Buffer together with its access-state tracking.
// Buffers have exactly one subresource, so the tracker always stays in the
// shared representation and transitions cover the whole buffer.
type Buffer struct {
	// mu protects destroyed and the handle.
	mu sync.RWMutex

	// halBuffer is the underlying buffer handle.
	halBuffer hal.Buffer

	// device is the parent device, retained for destruction.
	device hal.Device

	// descriptor holds the buffer configuration (immutable after creation).
	descriptor BufferDescriptor

	// state tracks the last recorded access state.
	state gpustate.Tracker[gpustate.ResourceState]

	// destroyed indicates whether the buffer has been destroyed.
	destroyed bool
}

// BufferDescriptor describes a buffer to create and track.
type BufferDescriptor struct {
	// Label is an optional debug name.
	Label string

	// Size is the buffer size in bytes.
	Size uint64

	// Usage specifies how the buffer will be used.
	Usage types.BufferUsage

	// InitialState is the access state the buffer starts in
	// (0 resolves to StateCommon).
	InitialState gpustate.ResourceState
}

// NewBuffer creates a Buffer from an existing buffer handle. The descriptor
// is copied and its zero fields resolved.
func NewBuffer(halBuffer hal.Buffer, device hal.Device, desc *BufferDescriptor) *Buffer {
	resolved := *desc
	if resolved.InitialState == gpustate.StateInvalid {
		resolved.InitialState = gpustate.StateCommon
	}

	b := &Buffer{
		halBuffer:  halBuffer,
		device:     device,
		descriptor: resolved,
		state:      gpustate.NewResourceTracker(),
	}
	b.state.Init(1, resolved.InitialState, false)
	return b
}

// CreateBuffer creates a buffer on device and begins tracking its access
// state in desc.InitialState.
//
// Returns an error if the device or descriptor is nil, the size is zero, or
// HAL buffer creation fails.
func CreateBuffer(device hal.Device, desc *BufferDescriptor) (*Buffer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	if desc.Size == 0 {
		return nil, fmt.Errorf("%w: size must be positive", ErrInvalidBufferSize)
	}

	halDesc := &hal.BufferDescriptor{
		Label: desc.Label,
		Size:  desc.Size,
		Usage: desc.Usage,
	}

	halBuffer, err := device.CreateBuffer(halDesc)
	if err != nil {
		return nil, fmt.Errorf("HAL buffer creation failed: %w", err)
	}

	return NewBuffer(halBuffer, device, desc), nil
}

// Label returns the buffer's debug label.
func (b *Buffer) Label() string {
	return b.descriptor.Label
}

// Size returns the buffer size in bytes.
func (b *Buffer) Size() uint64 {
	return b.descriptor.Size
}

// Usage returns the buffer usage flags.
func (b *Buffer) Usage() types.BufferUsage {
	return b.descriptor.Usage
}

// State returns the buffer's access-state tracker. The tracker is owned by
// the recording context; see the concurrency note on Texture.
func (b *Buffer) State() *gpustate.Tracker[gpustate.ResourceState] {
	return &b.state
}

// RequireState queues into batch the transition needed for the buffer to
// reach after, if any, and records the new state.
func (b *Buffer) RequireState(batch *gpustate.Batcher, after gpustate.ResourceState) {
	batch.Require(&b.state, gpustate.AllSubresources, after)
}

// HALBuffer returns the underlying buffer handle, or nil after Destroy.
func (b *Buffer) HALBuffer() hal.Buffer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.halBuffer
}

// IsDestroyed reports whether the buffer has been destroyed.
func (b *Buffer) IsDestroyed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.destroyed
}

// Destroy releases the HAL buffer and the tracked state. Destroy is
// idempotent.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return
	}
	b.destroyed = true
	halBuffer := b.halBuffer
	b.halBuffer = nil
	b.state.Release()
	b.mu.Unlock()

	if halBuffer != nil && b.device != nil {
		b.device.DestroyBuffer(halBuffer)
	}
}
