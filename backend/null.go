package backend

import "github.com/gogpu/blit/render"

func init() {
	Register(BackendNull, func() (render.Device, error) {
		return &render.NullDevice{}, nil
	})
}
