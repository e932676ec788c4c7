// Package backend provides a registry of render.Device factories.
//
// Device implementations register themselves from init() functions so
// that importing a backend package is enough to make it selectable:
//
//	import _ "github.com/gogpu/blit/backend/native" // wgpu device
//
//	dev, err := backend.Default()
package backend

import (
	"errors"

	"github.com/gogpu/blit/render"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is
	// not registered or fails to initialize.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Known backend names.
const (
	// BackendNative is the gogpu/wgpu device.
	BackendNative = "native"

	// BackendNull is the do-nothing device for headless use.
	BackendNull = "null"
)

// DeviceFactory creates a new device instance, or fails when the
// backing API is unavailable on this machine.
type DeviceFactory func() (render.Device, error)
