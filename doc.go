// Package blit provides the texture and sprite layer for 2D game renderers.
//
// # Overview
//
// blit owns the lifecycle of GPU-backed images: textures are acquired by
// asset path, deduplicated and use-counted, and released back when a caller
// is done with them. On top of the resources it resolves sprite-sheet cells
// and screen positions into single textured-quad draw calls.
//
// # Quick Start
//
//	import "github.com/gogpu/blit"
//
//	rc := blit.NewContext(device, 800, 600)
//	defer rc.Close()
//
//	ship, err := rc.AcquireSprite("gfx/ship.png", 6, 6, blit.LoadMapTransparency)
//	if err != nil {
//		// asset missing, decode failure, GPU failure: branch with errors.Is
//	}
//	defer rc.Release(ship)
//
//	sx, sy := blit.CellForHeading(ship, heading)
//	rc.BlitRelative(ship, pos, sx, sy, nil)
//
// # Coordinate Systems
//
// Three coordinate spaces coexist, all in logical units:
//
//   - Raw: origin at the screen center, (-W/2,-H/2) bottom-left and
//     (+W/2,+H/2) top-right. The device projection is configured in this
//     space and the quad primitive draws in it.
//   - Absolute: origin at the screen bottom-left, (W,H) top-right.
//     Used by BlitAbsolute and BlitScaled.
//   - Camera-relative: origin conceptually over the bound camera.
//     Used by BlitRelative; draws that resolve off screen are skipped.
//
// # Viewport Scaling
//
// The renderer targets a baseline of 600 logical units on the shorter
// screen axis. Smaller displays are letterboxed: drawing stays in logical
// units while the projection is scaled to cover the native resolution.
// Resize recomputes all derived factors when the display size changes.
//
// # Collaborators
//
// blit does not create windows, decode exotic formats, or probe driver
// capabilities. It consumes a render.Device for GPU work and an
// AssetReader for asset bytes; both are supplied by the host.
// The backend/native package provides a Device over gogpu/wgpu.
//
// # Threading
//
// The whole package is single-threaded by platform contract: every call
// that touches the device must happen on the thread that owns the
// graphics context. No internal synchronization is performed.
package blit
