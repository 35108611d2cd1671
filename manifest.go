package formembed

import (
	"io/fs"

	"github.com/goliatone/go-formembed/pkg/manifest"
)

// LoadManifest reads a single manifest document from disk.
func LoadManifest(path string) (*manifest.Store, error) {
	return manifest.LoadFile(path)
}

// LoadManifestFS merges every manifest document found in fsys.
func LoadManifestFS(fsys fs.FS) (*manifest.Store, error) {
	return manifest.LoadFS(fsys)
}
