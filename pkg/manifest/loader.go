package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
)

// Load reads the document identified by src. fsys is required for
// SourceKindFS sources and ignored otherwise.
func Load(src Source, fsys fs.FS) (*Store, error) {
	if src == nil {
		return nil, errors.New("manifest: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if fsys == nil {
			return nil, errors.New("manifest: fs source requires a file system")
		}
		data, err = fs.ReadFile(fsys, src.Location())
	default:
		return nil, fmt.Errorf("manifest: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", src.Location(), err)
	}

	defs, err := Parse(data, src.Location())
	if err != nil {
		return nil, err
	}
	return NewStore(defs...)
}

// LoadFile reads a single manifest document from disk.
func LoadFile(path string) (*Store, error) {
	return Load(SourceFromFile(path), nil)
}

// LoadFS walks fsys and merges every JSON/YAML manifest it finds. Embed names
// must be unique across files. A nil fsys yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store, _ := NewStore()
	if fsys == nil {
		return store, nil
	}

	var errs error
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isManifestFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("manifest: read %s: %w", path, err)
		}

		defs, err := Parse(data, path)
		if err != nil {
			errs = multierr.Append(errs, err)
			return nil
		}
		for _, def := range defs {
			errs = multierr.Append(errs, store.add(def))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if errs != nil {
		return nil, errs
	}
	return store, nil
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
