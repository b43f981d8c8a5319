package native

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/WoW55QQ/FlaxEngine/gpustate"
)

// mockHALTexture is a test double for hal.Texture.
type mockHALTexture struct {
	destroyed bool
}

// Destroy implements hal.Resource.
func (t *mockHALTexture) Destroy() { t.destroyed = true }

// NativeHandle implements hal.NativeHandle.
func (t *mockHALTexture) NativeHandle() uintptr { return 0 }

// CurrentUsage implements hal.Texture.
func (t *mockHALTexture) CurrentUsage() gputypes.TextureUsage { return 0 }

// AddPendingRef implements hal.Texture.
func (t *mockHALTexture) AddPendingRef() {}

// DecPendingRef implements hal.Texture.
func (t *mockHALTexture) DecPendingRef() {}

func TestNewTexture(t *testing.T) {
	desc := &TextureDescriptor{
		Label: "albedo",
		Size: gputypes.Extent3D{
			Width:              256,
			Height:             256,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}

	tex := NewTexture(&mockHALTexture{}, nil, desc)

	if tex.Label() != "albedo" {
		t.Errorf("Label() = %q, want %q", tex.Label(), "albedo")
	}
	if tex.Width() != 256 || tex.Height() != 256 {
		t.Errorf("size = %dx%d, want 256x256", tex.Width(), tex.Height())
	}
	if tex.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v, want RGBA8Unorm", tex.Format())
	}
	if tex.IsDestroyed() {
		t.Error("IsDestroyed() = true, want false")
	}
	if !tex.State().IsInitialized() {
		t.Error("State().IsInitialized() = false, want true")
	}
	if !tex.State().CheckState(gpustate.StateCommon) {
		t.Error("new texture not tracked as Common")
	}
}

func TestNewTextureResolvesDefaults(t *testing.T) {
	desc := &TextureDescriptor{
		Size: gputypes.Extent3D{Width: 64, Height: 64},
	}

	tex := NewTexture(&mockHALTexture{}, nil, desc)

	if got := tex.MipLevelCount(); got != 1 {
		t.Errorf("MipLevelCount() = %d, want 1", got)
	}
	if got := tex.ArrayLayers(); got != 1 {
		t.Errorf("ArrayLayers() = %d, want 1", got)
	}
	if got := tex.Layout().Count(); got != 1 {
		t.Errorf("Layout().Count() = %d, want 1", got)
	}
	if !tex.State().CheckState(gpustate.StateCommon) {
		t.Error("zero InitialState did not resolve to Common")
	}
}

func TestTexturePerSubresourceTracking(t *testing.T) {
	desc := &TextureDescriptor{
		Size: gputypes.Extent3D{
			Width:              128,
			Height:             128,
			DepthOrArrayLayers: 2,
		},
		MipLevelCount:          3,
		InitialState:           gpustate.StateShaderResource,
		PerSubresourceTracking: true,
	}

	tex := NewTexture(&mockHALTexture{}, nil, desc)

	if got := tex.Layout().Count(); got != 6 {
		t.Fatalf("Layout().Count() = %d, want 6", got)
	}
	if got := tex.State().SubresourceCount(); got != 6 {
		t.Errorf("State().SubresourceCount() = %d, want 6", got)
	}

	// Transition mip 1 of layer 1 to copy dest.
	sub := tex.Layout().Index(1, 1)
	var batch gpustate.Batcher
	tex.RequireState(&batch, sub, gpustate.StateCopyDest)

	got := batch.Flush()
	if len(got) != 1 {
		t.Fatalf("Flush() returned %d transitions, want 1", len(got))
	}
	if got[0].Before != gpustate.StateShaderResource || got[0].After != gpustate.StateCopyDest {
		t.Errorf("transition = %+v, want ShaderResource -> CopyDest", got[0])
	}
	if tex.State().AllSubresourcesSame() {
		t.Error("AllSubresourcesSame() = true after divergent transition, want false")
	}
	if got := tex.State().SubresourceState(sub); got != gpustate.StateCopyDest {
		t.Errorf("SubresourceState(%d) = %v, want CopyDest", sub, got)
	}
}

func TestTextureUniformTrackingHasNoTable(t *testing.T) {
	desc := &TextureDescriptor{
		Size:          gputypes.Extent3D{Width: 64, Height: 64},
		MipLevelCount: 5,
	}

	tex := NewTexture(&mockHALTexture{}, nil, desc)

	// The resource really has 5 subresources, but without per-subresource
	// tracking the tracker allocates nothing.
	if got := tex.Layout().Count(); got != 5 {
		t.Errorf("Layout().Count() = %d, want 5", got)
	}
	if got := tex.State().SubresourceCount(); got != 0 {
		t.Errorf("State().SubresourceCount() = %d, want 0", got)
	}
}

func TestCreateTextureNilDevice(t *testing.T) {
	desc := &TextureDescriptor{
		Size: gputypes.Extent3D{Width: 64, Height: 64},
	}
	if _, err := CreateTexture(nil, desc); !errors.Is(err, ErrNilDevice) {
		t.Errorf("CreateTexture(nil device) error = %v, want ErrNilDevice", err)
	}
}

func TestTextureDestroy(t *testing.T) {
	halTex := &mockHALTexture{}
	tex := NewTexture(halTex, nil, &TextureDescriptor{
		Size: gputypes.Extent3D{Width: 32, Height: 32},
	})

	tex.Destroy()

	if !tex.IsDestroyed() {
		t.Error("IsDestroyed() = false after Destroy, want true")
	}
	if tex.HALTexture() != nil {
		t.Error("HALTexture() != nil after Destroy")
	}
	if tex.State().IsInitialized() {
		t.Error("State().IsInitialized() = true after Destroy, want false")
	}

	// Destroy is idempotent.
	tex.Destroy()
}
