// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

// Recorder is a Device that records every call for inspection in tests.
// Textures are given sequential handles starting at 1; no GPU work is
// performed.
type Recorder struct {
	// Created maps each issued handle to its creation record.
	Created map[TextureHandle]CreatedTexture

	// Deleted lists deleted handles in order.
	Deleted []TextureHandle

	// Bound lists every BindTexture argument in order.
	Bound []TextureHandle

	// Quads lists every DrawQuad in submission order.
	Quads []QuadCall

	// Projections lists every SetProjection in order.
	Projections []Projection

	// NextErr is returned (and cleared) by the next Err call.
	NextErr ErrorCode

	// FailCreate makes CreateTexture fail with this error when non-nil.
	FailCreate error

	// Framebuffer backs ReadPixels.
	Framebuffer  []byte
	FramebufferW int
	FramebufferH int

	next    TextureHandle
	current TextureHandle
}

// CreatedTexture records the arguments of one CreateTexture call.
type CreatedTexture struct {
	W, H    int
	Pixels  []byte
	Options TextureOptions
}

// QuadCall records one DrawQuad with the texture bound at the time.
type QuadCall struct {
	Texture TextureHandle
	Quad    Quad
	Color   Color
}

// NewRecorder creates an empty recording device.
func NewRecorder() *Recorder {
	return &Recorder{Created: make(map[TextureHandle]CreatedTexture)}
}

// CreateTexture records the upload and returns the next handle.
func (r *Recorder) CreateTexture(pixels []byte, w, h int, opts TextureOptions) (TextureHandle, error) {
	if r.FailCreate != nil {
		return NilTexture, r.FailCreate
	}
	r.next++
	pix := make([]byte, len(pixels))
	copy(pix, pixels)
	r.Created[r.next] = CreatedTexture{W: w, H: h, Pixels: pix, Options: opts}
	return r.next, nil
}

// BindTexture records the bind and tracks the current texture.
func (r *Recorder) BindTexture(h TextureHandle) {
	r.current = h
	r.Bound = append(r.Bound, h)
}

// DeleteTexture records the deletion.
func (r *Recorder) DeleteTexture(h TextureHandle) {
	if h == NilTexture {
		return
	}
	r.Deleted = append(r.Deleted, h)
	delete(r.Created, h)
}

// DrawQuad records the draw against the currently bound texture.
func (r *Recorder) DrawQuad(q Quad, c Color) {
	r.Quads = append(r.Quads, QuadCall{Texture: r.current, Quad: q, Color: c})
}

// SetProjection records the projection change.
func (r *Recorder) SetProjection(p Projection) {
	r.Projections = append(r.Projections, p)
}

// ReadPixels returns the configured framebuffer.
func (r *Recorder) ReadPixels() ([]byte, int, int, error) {
	return r.Framebuffer, r.FramebufferW, r.FramebufferH, nil
}

// Err returns NextErr and clears it.
func (r *Recorder) Err() ErrorCode {
	e := r.NextErr
	r.NextErr = ErrNone
	return e
}

// Live returns the number of textures created and not yet deleted.
func (r *Recorder) Live() int { return len(r.Created) }

// Ensure Recorder implements Device.
var _ Device = (*Recorder)(nil)
