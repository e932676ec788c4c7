package native

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// blitShaderSource rasterizes one textured quad into the framebuffer
// storage buffer. The quad is split into two triangles; texel
// coordinates are interpolated barycentrically and sampled with
// nearest or bilinear filtering. Pixels are packed RGBA8, one u32 per
// pixel, bottom row first.
const blitShaderSource = `
struct QuadParams {
    fb_size: vec2<u32>,
    tex_size: vec2<u32>,
    sample_mode: u32,
    wrap_mode: u32,
    pad0: u32,
    pad1: u32,
    v0: vec2<f32>,
    v1: vec2<f32>,
    v2: vec2<f32>,
    v3: vec2<f32>,
    t0: vec2<f32>,
    t1: vec2<f32>,
    t2: vec2<f32>,
    t3: vec2<f32>,
    color: vec4<f32>,
}

@group(0) @binding(0) var<uniform> params: QuadParams;
@group(0) @binding(1) var<storage, read> tex: array<u32>;
@group(0) @binding(2) var<storage, read_write> fb: array<u32>;

fn unpack_rgba(v: u32) -> vec4<f32> {
    return vec4<f32>(
        f32(v & 0xFFu) / 255.0,
        f32((v >> 8u) & 0xFFu) / 255.0,
        f32((v >> 16u) & 0xFFu) / 255.0,
        f32((v >> 24u) & 0xFFu) / 255.0,
    );
}

fn pack_rgba(c: vec4<f32>) -> u32 {
    let r = u32(clamp(c.r, 0.0, 1.0) * 255.0 + 0.5);
    let g = u32(clamp(c.g, 0.0, 1.0) * 255.0 + 0.5);
    let b = u32(clamp(c.b, 0.0, 1.0) * 255.0 + 0.5);
    let a = u32(clamp(c.a, 0.0, 1.0) * 255.0 + 0.5);
    return r | (g << 8u) | (b << 16u) | (a << 24u);
}

fn tex_fetch(ix: i32, iy: i32) -> vec4<f32> {
    let w = i32(params.tex_size.x);
    let h = i32(params.tex_size.y);
    var x = ix;
    var y = iy;
    if (params.wrap_mode == 0u) {
        x = ((x % w) + w) % w;
        y = ((y % h) + h) % h;
    } else {
        x = clamp(x, 0, w - 1);
        y = clamp(y, 0, h - 1);
    }
    return unpack_rgba(tex[u32(y) * params.tex_size.x + u32(x)]);
}

fn sample_tex(uv: vec2<f32>) -> vec4<f32> {
    let size = vec2<f32>(params.tex_size);
    if (params.sample_mode == 0u) {
        return tex_fetch(i32(floor(uv.x * size.x)), i32(floor(uv.y * size.y)));
    }
    let pos = uv * size - vec2<f32>(0.5, 0.5);
    let x0 = i32(floor(pos.x));
    let y0 = i32(floor(pos.y));
    let fx = pos.x - floor(pos.x);
    let fy = pos.y - floor(pos.y);
    let c00 = tex_fetch(x0, y0);
    let c10 = tex_fetch(x0 + 1, y0);
    let c01 = tex_fetch(x0, y0 + 1);
    let c11 = tex_fetch(x0 + 1, y0 + 1);
    return mix(mix(c00, c10, fx), mix(c01, c11, fx), fy);
}

// Barycentric coordinates of p in triangle (a, b, c).
// Returns a negative first component for degenerate triangles.
fn tri_bary(p: vec2<f32>, a: vec2<f32>, b: vec2<f32>, c: vec2<f32>) -> vec3<f32> {
    let e0 = b - a;
    let e1 = c - a;
    let e2 = p - a;
    let den = e0.x * e1.y - e1.x * e0.y;
    if (abs(den) < 1e-6) {
        return vec3<f32>(-1.0, 0.0, 0.0);
    }
    let w1 = (e2.x * e1.y - e1.x * e2.y) / den;
    let w2 = (e0.x * e2.y - e2.x * e0.y) / den;
    return vec3<f32>(1.0 - w1 - w2, w1, w2);
}

@compute @workgroup_size(8, 8, 1)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    if (gid.x >= params.fb_size.x || gid.y >= params.fb_size.y) {
        return;
    }
    let p = vec2<f32>(f32(gid.x) + 0.5, f32(gid.y) + 0.5);
    var uv = vec2<f32>(0.0, 0.0);
    let b0 = tri_bary(p, params.v0, params.v1, params.v2);
    if (b0.x >= 0.0 && b0.y >= 0.0 && b0.z >= 0.0) {
        uv = b0.x * params.t0 + b0.y * params.t1 + b0.z * params.t2;
    } else {
        let b1 = tri_bary(p, params.v0, params.v2, params.v3);
        if (b1.x < 0.0 || b1.y < 0.0 || b1.z < 0.0) {
            return;
        }
        uv = b1.x * params.t0 + b1.y * params.t2 + b1.z * params.t3;
    }
    let src = sample_tex(uv) * params.color;
    let idx = gid.y * params.fb_size.x + gid.x;
    let dst = unpack_rgba(fb[idx]);
    let out_a = src.a + dst.a * (1.0 - src.a);
    var rgb = src.rgb * src.a + dst.rgb * dst.a * (1.0 - src.a);
    if (out_a > 0.0) {
        rgb = rgb / out_a;
    }
    fb[idx] = pack_rgba(vec4<f32>(rgb, out_a));
}
`

// compileShader compiles WGSL to SPIR-V and builds a HAL shader module.
// SPIR-V is little-endian 32-bit words.
func compileShader(device hal.Device, label, wgslSource string) (hal.ShaderModule, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", label, err)
	}
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: spirvCode},
	})
}
