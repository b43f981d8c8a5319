// Package native binds resource state tracking to gogpu/wgpu HAL resources.
package native

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/WoW55QQ/FlaxEngine/gpustate"
)

// Texture errors.
var (
	// ErrNilDevice is returned when creating a resource without a device.
	ErrNilDevice = errors.New("native: device is nil")

	// ErrNilDescriptor is returned when creating a resource without a descriptor.
	ErrNilDescriptor = errors.New("native: descriptor is nil")

	// ErrInvalidTextureSize is returned when texture dimensions are invalid.
	ErrInvalidTextureSize = errors.New("native: invalid texture size")
)

// Texture wraps a hal.Texture together with the access-state tracking the
// barrier layer needs. The descriptor is immutable after creation; the
// embedded tracker follows the resource through the require/record cycle of
// command recording.
//
// Thread safety: accessors and Destroy are guarded, matching the rest of
// the HAL wrappers. The state tracker itself is exempt: it belongs to the
// single recording context that owns the texture, which provides its own
// confinement.
//
// Lifecycle:
//  1. Create via CreateTexture (or NewTexture around an existing handle)
//  2. Record states through State or RequireState during rendering
//  3. Call Destroy when done; Release/re-Init the tracker only through
//     re-creation
type Texture struct {
	// mu protects destroyed and the handle.
	mu sync.RWMutex

	// halTexture is the underlying texture handle.
	halTexture hal.Texture

	// device is the parent device, retained for destruction.
	device hal.Device

	// descriptor holds the texture configuration (immutable after creation).
	descriptor TextureDescriptor

	// layout maps mip levels and array layers to subresource indices.
	layout gpustate.SubresourceLayout

	// state tracks the last recorded access state per subresource.
	state gpustate.Tracker[gpustate.ResourceState]

	// destroyed indicates whether the texture has been destroyed.
	destroyed bool
}

// TextureDescriptor describes a texture to create and track.
type TextureDescriptor struct {
	// Label is an optional debug name.
	Label string

	// Size is the texture dimensions.
	Size types.Extent3D

	// MipLevelCount is the number of mip levels (0 resolves to 1).
	MipLevelCount uint32

	// SampleCount is the number of samples per pixel (0 resolves to 1).
	SampleCount uint32

	// Dimension is the texture dimension (1D, 2D, 3D).
	Dimension types.TextureDimension

	// Format is the texture pixel format.
	Format types.TextureFormat

	// Usage specifies how the texture will be used.
	Usage types.TextureUsage

	// InitialState is the access state the texture starts in
	// (0 resolves to StateCommon).
	InitialState gpustate.ResourceState

	// PerSubresourceTracking requests individual state tracking of each
	// mip level and array layer. Leave false for resources that always
	// transition as a whole.
	PerSubresourceTracking bool
}

// NewTexture creates a Texture from an existing texture handle.
//
// This is typically called by CreateTexture after the underlying HAL
// texture exists. The descriptor is copied and its zero fields resolved.
func NewTexture(halTexture hal.Texture, device hal.Device, desc *TextureDescriptor) *Texture {
	resolved := *desc
	if resolved.MipLevelCount == 0 {
		resolved.MipLevelCount = 1
	}
	if resolved.SampleCount == 0 {
		resolved.SampleCount = 1
	}
	if resolved.Size.DepthOrArrayLayers == 0 {
		resolved.Size.DepthOrArrayLayers = 1
	}
	if resolved.InitialState == gpustate.StateInvalid {
		resolved.InitialState = gpustate.StateCommon
	}

	layout := gpustate.SubresourceLayout{
		MipLevels:   resolved.MipLevelCount,
		ArrayLayers: resolved.Size.DepthOrArrayLayers,
	}

	t := &Texture{
		halTexture: halTexture,
		device:     device,
		descriptor: resolved,
		layout:     layout,
		state:      gpustate.NewResourceTracker(),
	}
	t.state.Init(layout.Count(), resolved.InitialState, resolved.PerSubresourceTracking)
	return t
}

// CreateTexture creates a texture on device and begins tracking its access
// state in desc.InitialState.
//
// Returns an error if the device or descriptor is nil, the dimensions are
// invalid, or HAL texture creation fails.
func CreateTexture(device hal.Device, desc *TextureDescriptor) (*Texture, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d",
			ErrInvalidTextureSize, desc.Size.Width, desc.Size.Height)
	}

	mipLevelCount := desc.MipLevelCount
	if mipLevelCount == 0 {
		mipLevelCount = 1
	}
	sampleCount := desc.SampleCount
	if sampleCount == 0 {
		sampleCount = 1
	}
	depthOrArrayLayers := desc.Size.DepthOrArrayLayers
	if depthOrArrayLayers == 0 {
		depthOrArrayLayers = 1
	}

	halDesc := &hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              desc.Size.Width,
			Height:             desc.Size.Height,
			DepthOrArrayLayers: depthOrArrayLayers,
		},
		MipLevelCount: mipLevelCount,
		SampleCount:   sampleCount,
		Dimension:     desc.Dimension,
		Format:        desc.Format,
		Usage:         desc.Usage,
	}

	halTexture, err := device.CreateTexture(halDesc)
	if err != nil {
		return nil, fmt.Errorf("HAL texture creation failed: %w", err)
	}

	return NewTexture(halTexture, device, desc), nil
}

// Label returns the texture's debug label.
func (t *Texture) Label() string {
	return t.descriptor.Label
}

// Size returns the texture dimensions.
func (t *Texture) Size() types.Extent3D {
	return t.descriptor.Size
}

// Width returns the texture width in pixels.
func (t *Texture) Width() uint32 {
	return t.descriptor.Size.Width
}

// Height returns the texture height in pixels.
func (t *Texture) Height() uint32 {
	return t.descriptor.Size.Height
}

// MipLevelCount returns the number of mip levels.
func (t *Texture) MipLevelCount() uint32 {
	return t.descriptor.MipLevelCount
}

// ArrayLayers returns the texture depth or array layer count.
func (t *Texture) ArrayLayers() uint32 {
	return t.descriptor.Size.DepthOrArrayLayers
}

// Format returns the texture pixel format.
func (t *Texture) Format() types.TextureFormat {
	return t.descriptor.Format
}

// Usage returns the texture usage flags.
func (t *Texture) Usage() types.TextureUsage {
	return t.descriptor.Usage
}

// Layout returns the subresource layout of the texture. Layout.Count is the
// true subresource count, independent of whether per-subresource tracking
// was requested.
func (t *Texture) Layout() gpustate.SubresourceLayout {
	return t.layout
}

// State returns the texture's access-state tracker. The tracker is owned by
// the recording context; see the concurrency note on Texture.
func (t *Texture) State() *gpustate.Tracker[gpustate.ResourceState] {
	return &t.state
}

// RequireState queues into batch whatever transitions are needed for the
// subresource sub (or gpustate.AllSubresources) to reach after, and records
// the new state.
func (t *Texture) RequireState(batch *gpustate.Batcher, sub int, after gpustate.ResourceState) {
	batch.Require(&t.state, sub, after)
}

// HALTexture returns the underlying texture handle, or nil after Destroy.
func (t *Texture) HALTexture() hal.Texture {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.halTexture
}

// IsDestroyed reports whether the texture has been destroyed.
func (t *Texture) IsDestroyed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.destroyed
}

// Destroy releases the HAL texture and the tracked state. Destroy is
// idempotent.
func (t *Texture) Destroy() {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	halTexture := t.halTexture
	t.halTexture = nil
	t.state.Release()
	t.mu.Unlock()

	if halTexture != nil && t.device != nil {
		t.device.DestroyTexture(halTexture)
	}
}
