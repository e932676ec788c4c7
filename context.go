package blit

import (
	"fmt"
	"image/color"
	"io"

	"github.com/gogpu/blit/render"
)

// Context is the render context: it owns the texture cache, the camera
// reference, the GUI offsets, and the derived viewport state, and draws
// through the device it was given. Independent Contexts are fully
// isolated, which is what makes the subsystem testable.
//
// A Context is bound to the thread that owns the graphics context.
// Context implements io.Closer; Close reports any textures still alive
// as leaks.
type Context struct {
	device render.Device
	assets AssetReader
	cache  textureCache

	// camera is a weak reference owned by the game loop; nil when no
	// camera is bound.
	camera *Point

	// guiOff recenter camera-relative draws when a HUD occupies part of
	// the screen.
	guiOff Point

	view      Viewport
	baseline  float64
	filter    render.FilterMode
	filterSet bool

	// colorKey is the context-wide color key; nil when unset.
	colorKey color.Color

	closed bool
}

// Ensure Context implements io.Closer.
var _ io.Closer = (*Context)(nil)

// NewContext creates a render context drawing through device at the
// given raw display size. The device projection is configured
// immediately.
func NewContext(device render.Device, width, height int, opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Context{
		device:    device,
		assets:    o.assets,
		cache:     newTextureCache(),
		baseline:  o.baseline,
		filter:    o.filter,
		filterSet: o.filterSet,
		colorKey:  o.colorKey,
	}
	c.Resize(width, height)
	return c
}

// Viewport returns the current derived display state.
func (c *Context) Viewport() Viewport { return c.view }

// Resize recomputes the viewport for a new raw display size and pushes
// the resulting projection to the device. Call it whenever the window
// or display size changes.
func (c *Context) Resize(width, height int) {
	c.view = computeViewport(width, height, c.baseline)
	c.device.SetProjection(c.view.Projection())
	c.checkErr("set projection")
}

// BindCamera binds the camera position camera-relative draws follow.
// The pointer is a weak reference: the game loop keeps ownership and
// mutates it between frames. Pass nil to unbind.
func (c *Context) BindCamera(pos *Point) { c.camera = pos }

// SetGUIOffset sets the HUD-centering offsets added to camera-relative
// draws.
func (c *Context) SetGUIOffset(x, y float64) { c.guiOff = Point{X: x, Y: y} }

// Acquire returns the shared texture for path, loading it on first use.
// Repeated acquisitions of the same path return the same resource with
// its use count bumped; every Acquire must be paired with a Release.
func (c *Context) Acquire(path string, flags LoadFlags) (*Texture, error) {
	if c.closed {
		return nil, ErrContextClosed
	}
	if t := c.cache.lookup(path); t != nil {
		return t, nil
	}
	t, err := c.loadNew(path, flags)
	if err != nil {
		return nil, err
	}
	c.cache.insert(t)
	return t, nil
}

// AcquireSprite acquires path as a sprite sheet with cols x rows cells.
// The grid is stamped onto the shared texture, so the same asset must
// always be loaded with the same grid.
func (c *Context) AcquireSprite(path string, cols, rows int, flags LoadFlags) (*Texture, error) {
	t, err := c.Acquire(path, flags)
	if err != nil {
		return nil, err
	}
	t.setSheet(cols, rows)
	return t, nil
}

// FromSurface uploads an already-decoded surface as an anonymous
// texture. Anonymous textures are not tracked by the cache: the caller
// owns them and must Release exactly once. The surface must already be
// flipped to the renderer's bottom-up convention.
func (c *Context) FromSurface(s *Surface, flags LoadFlags) (*Texture, error) {
	if c.closed {
		return nil, ErrContextClosed
	}
	var trans *Bitset
	if flags&LoadMapTransparency != 0 {
		trans = mapTransparency(s)
	}
	t, err := c.upload(s)
	if err != nil {
		return nil, newLoadError("", ErrGPUResource, err)
	}
	t.trans = trans
	return t, nil
}

// Release drops one use of t. When the last use is released the GPU
// handle and the transparency map are destroyed. Releasing nil or an
// already-destroyed texture is a logged warning, never fatal.
func (c *Context) Release(t *Texture) {
	if t == nil {
		Logger().Warn("blit: release of nil texture")
		return
	}
	if t.identity != "" {
		found, dead := c.cache.release(t)
		if found {
			if dead {
				c.destroy(t)
			}
			return
		}
		// Tracked-looking texture the cache does not know: either a
		// double release or a foreign resource. Free what we can.
		Logger().Warn("blit: release of untracked texture", "identity", t.identity)
	} else {
		Logger().Debug("blit: releasing anonymous texture", "handle", t.Handle)
	}
	c.destroy(t)
}

// destroy frees the device texture and the transparency map.
func (c *Context) destroy(t *Texture) {
	c.device.DeleteTexture(t.Handle)
	t.Handle = render.NilTexture
	t.trans = nil
	Logger().Debug("blit: texture freed", "identity", t.identity)
}

// Close shuts the context down. Textures still alive are a resource
// leak: they are reported with identity and residual use count, and
// deliberately not freed so the report stays actionable.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	leaks := c.cache.leaks()
	if len(leaks) == 0 {
		return nil
	}
	for id, used := range leaks {
		Logger().Warn("blit: texture leaked", "identity", id, "uses", used)
	}
	return fmt.Errorf("blit: %d texture(s) still acquired at close", len(leaks))
}

// loadNew performs the full load path for one asset: read, decode,
// flip, optionally map transparency, upload.
func (c *Context) loadNew(path string, flags LoadFlags) (*Texture, error) {
	data, err := c.assets.Read(path)
	if err != nil || len(data) == 0 {
		return nil, newLoadError(path, ErrAssetMissing, err)
	}

	s, err := DecodeSurface(data)
	if err != nil {
		return nil, newLoadError(path, ErrDecodeFailed, err)
	}
	if c.colorKey != nil {
		s.SetColorKey(c.colorKey)
	}

	// Flip to the bottom-up texture convention before transparency
	// mapping so map coordinates line up with texels.
	s.VFlip()

	var trans *Bitset
	if flags&LoadMapTransparency != 0 {
		trans = mapTransparency(s)
	}

	t, err := c.upload(s)
	if err != nil {
		return nil, newLoadError(path, ErrGPUResource, err)
	}
	t.trans = trans
	t.identity = path
	Logger().Debug("blit: texture loaded", "identity", path,
		"w", t.LogicalW, "h", t.LogicalH, "pw", t.PhysicalW, "ph", t.PhysicalH)
	return t, nil
}

// upload pads the surface to power-of-two storage and creates the
// device texture with the appropriate sampling filter.
func (c *Context) upload(s *Surface) (*Texture, error) {
	pix, pw, ph := s.padPOT()

	// Linear looks better once the viewport scales; nearest is crisper
	// at 1:1.
	filter := render.FilterNearest
	if c.view.Scale != 1 {
		filter = render.FilterLinear
	}
	if c.filterSet {
		filter = c.filter
	}

	h, err := c.device.CreateTexture(pix, pw, ph, render.TextureOptions{
		Filter: filter,
		Wrap:   render.WrapRepeat,
	})
	if err != nil {
		return nil, err
	}
	c.checkErr("create texture")

	t := &Texture{
		LogicalW:  float64(s.W),
		LogicalH:  float64(s.H),
		PhysicalW: float64(pw),
		PhysicalH: float64(ph),
		Handle:    h,
	}
	t.setSheet(1, 1)
	return t, nil
}

// checkErr polls the device error state and logs anything reported.
// Device errors are diagnostics, never fatal.
func (c *Context) checkErr(op string) {
	if code := c.device.Err(); code != render.ErrNone {
		Logger().Warn("blit: device error", "op", op, "code", code.String())
	}
}
