package blit

import (
	"io/fs"
)

// AssetReader resolves an asset path to its raw bytes. It is the packaged
// data collaborator: the host decides whether assets come from a pack
// file, an embedded filesystem, or loose files on disk.
//
// Read reports a missing asset with an error; the returned bytes are
// never interpreted as valid when err is non-nil.
type AssetReader interface {
	Read(path string) ([]byte, error)
}

// FSAssets adapts an fs.FS (os.DirFS, embed.FS, a zip reader) into an
// AssetReader.
type FSAssets struct {
	FS fs.FS
}

// Read returns the contents of path within the wrapped filesystem.
func (a FSAssets) Read(path string) ([]byte, error) {
	return fs.ReadFile(a.FS, path)
}

// assetFunc adapts a plain function into an AssetReader.
type assetFunc func(path string) ([]byte, error)

func (f assetFunc) Read(path string) ([]byte, error) { return f(path) }

// AssetReaderFunc wraps a function as an AssetReader.
func AssetReaderFunc(f func(path string) ([]byte, error)) AssetReader {
	return assetFunc(f)
}
