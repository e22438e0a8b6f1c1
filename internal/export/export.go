// Package export writes resolved parts to disk as JSON bundles for the
// kernel to realize. Bundles are encoded deterministically so regenerating
// an unchanged part produces a byte-identical file, and may optionally be
// zstd compressed.
package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"pwh/internal/errors"
	"pwh/internal/geometry"
	"pwh/internal/output"
	"pwh/internal/version"
)

// Bundle is the on-disk form of a resolved part
type Bundle struct {
	Name string `json:"name"`
	// GeneratorVersion records which release produced the bundle
	GeneratorVersion string             `json:"generatorVersion"`
	Program          *geometry.Program  `json:"program,omitempty"`
	Assembly         *geometry.Assembly `json:"assembly,omitempty"`
}

// NewBundle wraps a resolved part. Exactly one of program or assembly must
// be set.
func NewBundle(name string, program *geometry.Program, assembly *geometry.Assembly) (*Bundle, error) {
	if (program == nil) == (assembly == nil) {
		return nil, errors.New(errors.InvalidArgument,
			"a bundle carries either a program or an assembly")
	}
	return &Bundle{
		Name:             name,
		GeneratorVersion: version.Version,
		Program:          program,
		Assembly:         assembly,
	}, nil
}

// Encode renders the bundle as deterministic indented JSON
func (b *Bundle) Encode() ([]byte, error) {
	return output.DeterministicEncodeIndented(b, "  ")
}

// Writer writes bundles into a directory
type Writer struct {
	// Dir is the output directory, created on first write
	Dir string
	// Compress writes .json.zst instead of .json
	Compress bool
}

// Write stores the bundle and returns the path written
func (w *Writer) Write(bundle *Bundle) (string, error) {
	data, err := bundle.Encode()
	if err != nil {
		return "", errors.Wrap(errors.InternalError, "encoding bundle "+bundle.Name, err)
	}

	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", errors.Wrap(errors.InternalError, "creating output directory", err)
	}

	name := bundle.Name + ".json"
	if w.Compress {
		// Deterministic bundles stay deterministic through compression:
		// zstd output depends only on input bytes and options
		encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return "", errors.Wrap(errors.InternalError, "initializing compressor", err)
		}
		data = encoder.EncodeAll(data, nil)
		_ = encoder.Close()
		name += ".zst"
	}

	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrap(errors.InternalError, "writing bundle "+bundle.Name, err)
	}
	return path, nil
}

// Read loads a bundle back, transparently decompressing .zst files
func Read(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.InternalError, "reading bundle "+path, err)
	}

	if filepath.Ext(path) == ".zst" {
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return nil, errors.Wrap(errors.InternalError, "initializing decompressor", err)
		}
		defer decoder.Close()
		data, err = decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, errors.Wrap(errors.InternalError, "decompressing bundle "+path, err)
		}
	}

	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, errors.Wrap(errors.InternalError, "decoding bundle "+path, err)
	}
	return &bundle, nil
}
