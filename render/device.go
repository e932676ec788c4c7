// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render defines the graphics-device contracts consumed by blit.
//
// blit RECEIVES a Device from the host application, it does NOT create
// one. The host owns the window, the graphics context, and the thread
// the context is current on; every Device method must be called from
// that thread.
package render

import (
	"github.com/gogpu/gputypes"
)

// TextureHandle is the opaque identifier of an uploaded GPU texture.
// Zero is never a valid handle.
type TextureHandle uint64

// NilTexture is the zero, invalid texture handle.
const NilTexture TextureHandle = 0

// FilterMode selects how a texture is sampled when scaled.
type FilterMode uint8

const (
	// FilterNearest selects the closest texel. Crisp at 1:1 scale.
	FilterNearest FilterMode = iota

	// FilterLinear interpolates between neighboring texels. Better when
	// the viewport is scaled, at the cost of slight edge artifacts.
	FilterLinear
)

// WrapMode selects how sampling outside [0,1] texture space behaves.
type WrapMode uint8

const (
	// WrapRepeat tiles the texture.
	WrapRepeat WrapMode = iota

	// WrapClamp clamps coordinates to the texture edge.
	WrapClamp
)

// TextureOptions describes parameters for creating a texture.
type TextureOptions struct {
	// Label is an optional debug label for the texture.
	Label string

	// Filter is the sampling filter for both minification and
	// magnification.
	Filter FilterMode

	// Wrap applies to both texture axes.
	Wrap WrapMode

	// Format is the pixel format of the uploaded data.
	// The zero value means 8-bit RGBA.
	Format gputypes.TextureFormat
}

// Vec2 is a 2D coordinate in device terms: a raw-space position for
// vertices, or a normalized texel position for texture coordinates.
type Vec2 struct {
	X, Y float64
}

// Color is a straight-alpha draw color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Quad is one textured quadrilateral. Corners run counter-clockwise
// from the bottom-left: V[0] bottom-left, V[1] bottom-right,
// V[2] top-right, V[3] top-left. T holds the matching texel coordinates.
type Quad struct {
	V [4]Vec2
	T [4]Vec2
}

// Projection describes the orthographic projection for raw-space
// drawing, plus the letterbox scale applied on top of it.
type Projection struct {
	Left, Right, Bottom, Top float64

	// ScaleX, ScaleY scale drawing coordinates so that callers keep
	// working in logical units while the projection covers the native
	// resolution. Both are 1 when no letterboxing is in effect.
	ScaleX, ScaleY float64
}

// ErrorCode is a device error state reported by Err.
type ErrorCode int

// Device error codes, mirroring the error states legacy GL-style APIs
// report. ErrNone means no error has occurred since the last query.
const (
	ErrNone ErrorCode = iota
	ErrInvalidEnum
	ErrInvalidValue
	ErrInvalidOperation
	ErrOutOfMemory
	ErrDeviceLost
	ErrUnknown
)

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrNone:
		return "no error"
	case ErrInvalidEnum:
		return "invalid enum"
	case ErrInvalidValue:
		return "invalid value"
	case ErrInvalidOperation:
		return "invalid operation"
	case ErrOutOfMemory:
		return "out of memory"
	case ErrDeviceLost:
		return "device lost"
	default:
		return "unknown error"
	}
}

// Device is the narrow graphics contract blit draws through.
//
// All methods must be called from the thread that owns the graphics
// context. Draw calls execute in submission order; a DrawQuad depends on
// the texture bound by the preceding BindTexture.
type Device interface {
	// CreateTexture uploads w*h RGBA pixels and returns a handle.
	// len(pixels) must be w*h*4.
	CreateTexture(pixels []byte, w, h int, opts TextureOptions) (TextureHandle, error)

	// BindTexture makes the texture current for subsequent DrawQuad calls.
	BindTexture(h TextureHandle)

	// DeleteTexture releases the texture. Deleting NilTexture is a no-op.
	DeleteTexture(h TextureHandle)

	// DrawQuad draws one textured quad with the given color modulation
	// using the currently bound texture.
	DrawQuad(q Quad, c Color)

	// SetProjection reconfigures the raw-space projection.
	SetProjection(p Projection)

	// ReadPixels returns the current framebuffer contents as tightly
	// packed RGBA bytes, bottom row first, with the framebuffer size.
	ReadPixels() (pix []byte, w, h int, err error)

	// Err returns the device error state and clears it. Drivers latch
	// the first error between queries.
	Err() ErrorCode
}

// NullDevice is a Device that accepts everything and draws nothing.
// Useful for headless game logic and benchmarks.
type NullDevice struct {
	next TextureHandle
}

// CreateTexture returns a fresh unique handle without uploading.
func (d *NullDevice) CreateTexture(pixels []byte, w, h int, opts TextureOptions) (TextureHandle, error) {
	d.next++
	return d.next, nil
}

// BindTexture does nothing.
func (d *NullDevice) BindTexture(h TextureHandle) {}

// DeleteTexture does nothing.
func (d *NullDevice) DeleteTexture(h TextureHandle) {}

// DrawQuad does nothing.
func (d *NullDevice) DrawQuad(q Quad, c Color) {}

// SetProjection does nothing.
func (d *NullDevice) SetProjection(p Projection) {}

// ReadPixels returns an empty framebuffer.
func (d *NullDevice) ReadPixels() ([]byte, int, int, error) {
	return nil, 0, 0, nil
}

// Err always reports no error.
func (d *NullDevice) Err() ErrorCode { return ErrNone }

// Ensure NullDevice implements Device.
var _ Device = (*NullDevice)(nil)
