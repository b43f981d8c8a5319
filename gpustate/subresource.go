package gpustate

import "github.com/gogpu/gputypes"

// SubresourceLayout describes how a texture's mip chain and array layers
// map to linear subresource indices. Subresources are numbered mip-major
// within each layer: index = mip + layer*MipLevels.
type SubresourceLayout struct {
	// MipLevels is the number of mip levels per array layer (1+).
	MipLevels uint32

	// ArrayLayers is the number of array layers (1+).
	ArrayLayers uint32
}

// LayoutForExtent returns the layout of a texture with the given size and
// mip level count. The array layer count comes from size.DepthOrArrayLayers;
// zero values resolve to 1, mirroring descriptor defaulting at texture
// creation.
func LayoutForExtent(size gputypes.Extent3D, mipLevels uint32) SubresourceLayout {
	layers := size.DepthOrArrayLayers
	if layers == 0 {
		layers = 1
	}
	if mipLevels == 0 {
		mipLevels = 1
	}
	return SubresourceLayout{MipLevels: mipLevels, ArrayLayers: layers}
}

// Count returns the total number of subresources in the layout.
func (l SubresourceLayout) Count() int {
	return int(l.MipLevels) * int(l.ArrayLayers)
}

// Index returns the linear subresource index of the given mip level and
// array layer. It panics when either coordinate lies outside the layout.
func (l SubresourceLayout) Index(mip, layer uint32) int {
	if mip >= l.MipLevels || layer >= l.ArrayLayers {
		panic("gpustate: mip level or array layer out of range")
	}
	return int(mip) + int(layer)*int(l.MipLevels)
}

// Split is the inverse of [SubresourceLayout.Index]: it returns the mip
// level and array layer of a linear subresource index. It panics when index
// lies outside [0, Count()).
func (l SubresourceLayout) Split(index int) (mip, layer uint32) {
	if index < 0 || index >= l.Count() {
		panic("gpustate: subresource index out of range")
	}
	mips := int(l.MipLevels)
	//nolint:gosec // G115: bounded by Count above
	return uint32(index % mips), uint32(index / mips)
}
