package partspec

import (
	"path/filepath"

	"github.com/BurntSushi/toml"

	"pwh/internal/errors"
)

// Manifest is a TOML build manifest naming the part specs to generate
// together with shared output options
type Manifest struct {
	Build BuildOptions   `toml:"build"`
	Parts []ManifestPart `toml:"part"`
}

// BuildOptions are the output settings shared by every part in the manifest
type BuildOptions struct {
	// Output is the directory bundles are written to, relative to the
	// manifest unless absolute
	Output string `toml:"output"`
	// Compress enables zstd compression of the exported bundles
	Compress bool `toml:"compress"`
}

// ManifestPart points at one part spec file
type ManifestPart struct {
	File string `toml:"file"`
}

// LoadManifest reads and validates a TOML build manifest. Relative spec and
// output paths are resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	var manifest Manifest
	if _, err := toml.DecodeFile(path, &manifest); err != nil {
		return nil, errors.Wrap(errors.SpecInvalid, "manifest is not valid TOML", err)
	}

	if len(manifest.Parts) == 0 {
		return nil, errors.New(errors.SpecInvalid, "manifest names no parts")
	}
	if manifest.Build.Output == "" {
		manifest.Build.Output = "parts"
	}

	base := filepath.Dir(path)
	if !filepath.IsAbs(manifest.Build.Output) {
		manifest.Build.Output = filepath.Join(base, manifest.Build.Output)
	}
	for i, part := range manifest.Parts {
		if part.File == "" {
			return nil, errors.Newf(errors.SpecInvalid, "manifest part %d names no file", i)
		}
		if !filepath.IsAbs(part.File) {
			manifest.Parts[i].File = filepath.Join(base, part.File)
		}
	}
	return &manifest, nil
}

// LoadParts loads every part spec the manifest names
func (m *Manifest) LoadParts() ([]*Spec, error) {
	specs := make([]*Spec, 0, len(m.Parts))
	for _, part := range m.Parts {
		spec, err := Load(part.File)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
