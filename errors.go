package blit

import (
	"errors"
	"fmt"
)

// Load failure classes. A failed load always resolves to a *LoadError
// wrapping one of these, so callers can branch on cause with errors.Is
// and substitute a placeholder or abort.
var (
	// ErrAssetMissing is returned when the asset reader cannot locate a path.
	ErrAssetMissing = errors.New("blit: asset missing")

	// ErrDecodeFailed is returned when the decoder rejects the asset bytes.
	ErrDecodeFailed = errors.New("blit: image decode failed")

	// ErrGPUResource is returned when GPU texture creation fails.
	ErrGPUResource = errors.New("blit: GPU resource creation failed")

	// ErrContextClosed is returned when operating on a closed Context.
	ErrContextClosed = errors.New("blit: context closed")
)

// LoadError describes a failed texture load. It wraps one of the load
// failure classes above plus the underlying collaborator error.
type LoadError struct {
	// Path is the asset path that failed to load.
	// Empty for anonymous surface uploads.
	Path string

	// Kind is one of ErrAssetMissing, ErrDecodeFailed, ErrGPUResource.
	Kind error

	// Err is the underlying error from the collaborator, if any.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	switch {
	case e.Path == "" && e.Err == nil:
		return e.Kind.Error()
	case e.Path == "":
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	case e.Err == nil:
		return fmt.Sprintf("%v: %q", e.Kind, e.Path)
	default:
		return fmt.Sprintf("%v: %q: %v", e.Kind, e.Path, e.Err)
	}
}

// Unwrap exposes the underlying collaborator error to errors.Is/As.
func (e *LoadError) Unwrap() error { return e.Err }

// Is reports whether target matches the failure class.
func (e *LoadError) Is(target error) bool { return target == e.Kind }

// newLoadError builds a *LoadError for path with the given class and cause.
func newLoadError(path string, kind, err error) *LoadError {
	return &LoadError{Path: path, Kind: kind, Err: err}
}
