// Package native implements render.Device on gogpu/wgpu.
//
// Quads are rasterized by a compute shader into a storage-buffer
// framebuffer. Draw calls accumulate into a batch; the batch is
// dispatched as one compute pass per quad inside a single command
// encoder, which keeps submission order while paying one fence wait
// per flush instead of one per draw.
//
// Importing this package registers the "native" backend:
//
//	import _ "github.com/gogpu/blit/backend/native"
package native

import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/backend"
	"github.com/gogpu/blit/render"
)

func init() {
	backend.Register(backend.BackendNative, func() (render.Device, error) {
		return New()
	})
}

// ErrNoAdapter is returned when no usable GPU adapter is found.
var ErrNoAdapter = errors.New("native: no GPU adapters found")

// quadParams mirrors the shader's QuadParams uniform. All fields are
// 4 bytes wide so the Go layout matches the WGSL layout exactly.
type quadParams struct {
	FBWidth, FBHeight   uint32
	TexWidth, TexHeight uint32
	SampleMode          uint32
	WrapMode            uint32
	Pad0, Pad1          uint32
	V                   [8]float32
	T                   [8]float32
	Color               [4]float32
}

type texture struct {
	buf  hal.Buffer
	w, h int
	opts render.TextureOptions
}

type pendingQuad struct {
	tex    render.TextureHandle
	params quadParams
}

// Device draws through gogpu/wgpu compute dispatches.
//
// Not safe for concurrent use; all calls must come from the thread
// that owns the GPU context, per the render.Device contract.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	shared   bool

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	textures map[render.TextureHandle]*texture
	nextTex  render.TextureHandle
	bound    render.TextureHandle

	proj     render.Projection
	fbW, fbH int
	fbBuf    hal.Buffer
	pending  []pendingQuad

	lastErr render.ErrorCode
}

var _ render.Device = (*Device)(nil)

// New creates a Device on its own GPU instance. The first discrete or
// integrated adapter wins.
func New() (*Device, error) {
	hb, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not compiled in", backend.ErrBackendNotAvailable)
	}
	instance, err := hb.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("native: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("native: open device: %w", err)
	}

	d := &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		textures: make(map[render.TextureHandle]*texture),
	}
	if err := d.createPipeline(); err != nil {
		d.device.Destroy()
		instance.Destroy()
		return nil, err
	}
	blit.Logger().Debug("native: device initialized", "adapter", selected.Info.Name)
	return d, nil
}

// NewWithProvider creates a Device on a GPU device shared with the
// host application. The provider must expose the underlying HAL
// handles via HalDevice() and HalQueue().
func NewWithProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("native: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("native: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("native: provider HalQueue is not hal.Queue")
	}

	d := &Device{
		device:   device,
		queue:    queue,
		shared:   true,
		textures: make(map[render.TextureHandle]*texture),
	}
	if err := d.createPipeline(); err != nil {
		return nil, err
	}
	blit.Logger().Debug("native: using shared GPU device")
	return d, nil
}

func (d *Device) createPipeline() error {
	shader, err := compileShader(d.device, "blit_quad", blitShaderSource)
	if err != nil {
		return fmt.Errorf("native: compile blit shader: %w", err)
	}
	d.shader = shader

	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "blit_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("native: create bind group layout: %w", err)
	}
	d.bindLayout = bindLayout

	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "blit_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{d.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("native: create pipeline layout: %w", err)
	}
	d.pipeLayout = pipeLayout

	pipeline, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "blit_pipeline", Layout: d.pipeLayout,
		Compute: hal.ComputeState{Module: d.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("native: create compute pipeline: %w", err)
	}
	d.pipeline = pipeline
	return nil
}

// CreateTexture uploads RGBA pixels into a read-only storage buffer.
// Buffer bytes are little-endian, so the packed u32 layout the shader
// reads is exactly the incoming byte stream.
func (d *Device) CreateTexture(pixels []byte, w, h int, opts render.TextureOptions) (render.TextureHandle, error) {
	if w <= 0 || h <= 0 || len(pixels) != w*h*4 {
		d.setErr(render.ErrInvalidValue)
		return render.NilTexture, fmt.Errorf("native: texture %dx%d with %d pixel bytes", w, h, len(pixels))
	}
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: opts.Label, Size: uint64(len(pixels)),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		d.setErr(render.ErrOutOfMemory)
		return render.NilTexture, fmt.Errorf("native: create texture buffer: %w", err)
	}
	d.queue.WriteBuffer(buf, 0, pixels)

	d.nextTex++
	d.textures[d.nextTex] = &texture{buf: buf, w: w, h: h, opts: opts}
	return d.nextTex, nil
}

// BindTexture makes the texture current for subsequent draws.
func (d *Device) BindTexture(h render.TextureHandle) {
	if h != render.NilTexture {
		if _, ok := d.textures[h]; !ok {
			d.setErr(render.ErrInvalidValue)
			return
		}
	}
	d.bound = h
}

// DeleteTexture releases the texture's GPU buffer.
func (d *Device) DeleteTexture(h render.TextureHandle) {
	if h == render.NilTexture {
		return
	}
	tex, ok := d.textures[h]
	if !ok {
		d.setErr(render.ErrInvalidValue)
		return
	}
	d.flushTexture(h)
	d.device.DestroyBuffer(tex.buf)
	delete(d.textures, h)
	if d.bound == h {
		d.bound = render.NilTexture
	}
}

// DrawQuad queues one quad for the next flush. Vertices are mapped
// from projection space to framebuffer pixel space on the CPU so the
// shader only ever sees pixel coordinates.
func (d *Device) DrawQuad(q render.Quad, c render.Color) {
	if d.bound == render.NilTexture {
		d.setErr(render.ErrInvalidOperation)
		return
	}
	tex, ok := d.textures[d.bound]
	if !ok {
		d.setErr(render.ErrInvalidOperation)
		return
	}
	if d.fbW <= 0 || d.fbH <= 0 {
		d.setErr(render.ErrInvalidOperation)
		return
	}

	p := quadParams{
		FBWidth: uint32(d.fbW), FBHeight: uint32(d.fbH),
		TexWidth: uint32(tex.w), TexHeight: uint32(tex.h),
		Color: [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)},
	}
	if tex.opts.Filter == render.FilterLinear {
		p.SampleMode = 1
	}
	if tex.opts.Wrap == render.WrapClamp {
		p.WrapMode = 1
	}
	for i := 0; i < 4; i++ {
		x, y := d.toPixel(q.V[i].X, q.V[i].Y)
		p.V[i*2] = x
		p.V[i*2+1] = y
		p.T[i*2] = float32(q.T[i].X)
		p.T[i*2+1] = float32(q.T[i].Y)
	}
	d.pending = append(d.pending, pendingQuad{tex: d.bound, params: p})
}

// toPixel maps a projection-space coordinate to framebuffer pixels.
// Row zero is the bottom of the framebuffer.
func (d *Device) toPixel(x, y float64) (float32, float32) {
	sx, sy := d.proj.ScaleX, d.proj.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	w := d.proj.Right - d.proj.Left
	h := d.proj.Top - d.proj.Bottom
	px := (x*sx - d.proj.Left) / w * float64(d.fbW)
	py := (y*sy - d.proj.Bottom) / h * float64(d.fbH)
	return float32(px), float32(py)
}

// SetProjection reconfigures the projection and sizes the framebuffer
// to cover it. Resizing drops any previous framebuffer contents.
func (d *Device) SetProjection(p render.Projection) {
	d.proj = p
	w := int(p.Right - p.Left + 0.5)
	h := int(p.Top - p.Bottom + 0.5)
	if w <= 0 || h <= 0 {
		d.setErr(render.ErrInvalidValue)
		return
	}
	if w == d.fbW && h == d.fbH && d.fbBuf != nil {
		return
	}
	if d.fbBuf != nil {
		d.pending = d.pending[:0]
		d.device.DestroyBuffer(d.fbBuf)
		d.fbBuf = nil
	}
	size := uint64(w * h * 4)
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "blit_framebuffer", Size: size,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		d.setErr(render.ErrOutOfMemory)
		blit.Logger().Warn("native: create framebuffer", "err", err)
		return
	}
	d.queue.WriteBuffer(buf, 0, make([]byte, size))
	d.fbBuf = buf
	d.fbW, d.fbH = w, h
}

// Flush dispatches all queued quads: one compute pass per quad in a
// single command encoder, so storage-buffer barriers between passes
// preserve draw order.
func (d *Device) Flush() error {
	if len(d.pending) == 0 {
		return nil
	}
	quads := d.pending
	d.pending = d.pending[:0]

	paramSize := uint64(unsafe.Sizeof(quadParams{}))
	uniformBufs := make([]hal.Buffer, 0, len(quads))
	bindGroups := make([]hal.BindGroup, 0, len(quads))
	defer func() {
		for _, bg := range bindGroups {
			d.device.DestroyBindGroup(bg)
		}
		for _, ub := range uniformBufs {
			d.device.DestroyBuffer(ub)
		}
	}()

	fbSize := uint64(d.fbW * d.fbH * 4)
	for i := range quads {
		tex := d.textures[quads[i].tex]
		if tex == nil {
			continue
		}
		ub, err := d.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "blit_params", Size: paramSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			d.setErr(render.ErrOutOfMemory)
			return fmt.Errorf("native: create uniform buffer: %w", err)
		}
		uniformBufs = append(uniformBufs, ub)
		d.queue.WriteBuffer(ub, 0, structToBytes(unsafe.Pointer(&quads[i].params), unsafe.Sizeof(quads[i].params))) //nolint:gosec // safe struct serialization

		bg, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label: "blit_bind", Layout: d.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{Buffer: ub.NativeHandle(), Offset: 0, Size: paramSize}},
				{Binding: 1, Resource: gputypes.BufferBinding{Buffer: tex.buf.NativeHandle(), Offset: 0, Size: uint64(tex.w * tex.h * 4)}},
				{Binding: 2, Resource: gputypes.BufferBinding{Buffer: d.fbBuf.NativeHandle(), Offset: 0, Size: fbSize}},
			},
		})
		if err != nil {
			d.setErr(render.ErrUnknown)
			return fmt.Errorf("native: create bind group: %w", err)
		}
		bindGroups = append(bindGroups, bg)
	}

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "blit_encoder"})
	if err != nil {
		d.setErr(render.ErrUnknown)
		return fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("blit_batch"); err != nil {
		d.setErr(render.ErrUnknown)
		return fmt.Errorf("native: begin encoding: %w", err)
	}
	for _, bg := range bindGroups {
		pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "blit_pass"})
		pass.SetPipeline(d.pipeline)
		pass.SetBindGroup(0, bg, nil)
		pass.Dispatch((uint32(d.fbW)+7)/8, (uint32(d.fbH)+7)/8, 1)
		pass.End()
	}
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		d.setErr(render.ErrUnknown)
		return fmt.Errorf("native: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	return d.submitAndWait([]hal.CommandBuffer{cmdBuf})
}

// ReadPixels flushes queued draws and reads back the framebuffer.
// Rows come back bottom first, matching the internal layout.
func (d *Device) ReadPixels() ([]byte, int, int, error) {
	if d.fbBuf == nil {
		return nil, 0, 0, fmt.Errorf("native: no framebuffer, call SetProjection first")
	}
	if err := d.Flush(); err != nil {
		return nil, 0, 0, err
	}

	size := uint64(d.fbW * d.fbH * 4)
	staging, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "blit_staging", Size: size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		d.setErr(render.ErrOutOfMemory)
		return nil, 0, 0, fmt.Errorf("native: create staging buffer: %w", err)
	}
	defer d.device.DestroyBuffer(staging)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "blit_readback"})
	if err != nil {
		d.setErr(render.ErrUnknown)
		return nil, 0, 0, fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("blit_readback"); err != nil {
		d.setErr(render.ErrUnknown)
		return nil, 0, 0, fmt.Errorf("native: begin encoding: %w", err)
	}
	encoder.CopyBufferToBuffer(d.fbBuf, staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: size},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		d.setErr(render.ErrUnknown)
		return nil, 0, 0, fmt.Errorf("native: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	if err := d.submitAndWait([]hal.CommandBuffer{cmdBuf}); err != nil {
		return nil, 0, 0, err
	}

	out := make([]byte, size)
	if err := d.queue.ReadBuffer(staging, 0, out); err != nil {
		d.setErr(render.ErrUnknown)
		return nil, 0, 0, fmt.Errorf("native: readback: %w", err)
	}
	return out, d.fbW, d.fbH, nil
}

func (d *Device) submitAndWait(cmdBufs []hal.CommandBuffer) error {
	fence, err := d.device.CreateFence()
	if err != nil {
		d.setErr(render.ErrUnknown)
		return fmt.Errorf("native: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)
	if err := d.queue.Submit(cmdBufs, fence, 1); err != nil {
		d.setErr(render.ErrDeviceLost)
		return fmt.Errorf("native: submit: %w", err)
	}
	ok, err := d.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !ok {
		d.setErr(render.ErrDeviceLost)
		return fmt.Errorf("native: wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

// Err returns the latched error state and clears it.
func (d *Device) Err() render.ErrorCode {
	code := d.lastErr
	d.lastErr = render.ErrNone
	return code
}

func (d *Device) setErr(code render.ErrorCode) {
	if d.lastErr == render.ErrNone {
		d.lastErr = code
	}
}

// flushTexture forces queued quads out before their texture vanishes.
func (d *Device) flushTexture(h render.TextureHandle) {
	for i := range d.pending {
		if d.pending[i].tex == h {
			if err := d.Flush(); err != nil {
				blit.Logger().Warn("native: flush before texture delete", "err", err)
			}
			return
		}
	}
}

// Close destroys all GPU resources. Shared devices are not destroyed;
// their owner does that.
func (d *Device) Close() error {
	flushErr := d.Flush()
	for h, tex := range d.textures {
		d.device.DestroyBuffer(tex.buf)
		delete(d.textures, h)
	}
	if d.fbBuf != nil {
		d.device.DestroyBuffer(d.fbBuf)
		d.fbBuf = nil
	}
	if d.pipeline != nil {
		d.device.DestroyComputePipeline(d.pipeline)
		d.pipeline = nil
	}
	if d.pipeLayout != nil {
		d.device.DestroyPipelineLayout(d.pipeLayout)
		d.pipeLayout = nil
	}
	if d.bindLayout != nil {
		d.device.DestroyBindGroupLayout(d.bindLayout)
		d.bindLayout = nil
	}
	if d.shader != nil {
		d.device.DestroyShaderModule(d.shader)
		d.shader = nil
	}
	if !d.shared {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
	return flushErr
}

func structToBytes(ptr unsafe.Pointer, size uintptr) []byte {
	return unsafe.Slice((*byte)(ptr), size) //nolint:gosec // safe struct serialization
}
