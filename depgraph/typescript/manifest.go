package typescript

import (
	"encoding/json"
	"path/filepath"
)

const manifestFileName = "package.json"

// PackageDescriptor holds the package.json fields that redirect type lookups.
type PackageDescriptor struct {
	Types   string `json:"types"`
	Typings string `json:"typings"`
}

// TypesEntry returns the declared types entry point, preferring "types" over "typings".
func (d PackageDescriptor) TypesEntry() (string, bool) {
	if d.Types != "" {
		return d.Types, true
	}
	if d.Typings != "" {
		return d.Typings, true
	}
	return "", false
}

// ReadManifest reads dir/package.json. A missing or malformed manifest is
// reported as absent, never as an error.
func ReadManifest(fsys FileSystem, dir string) (PackageDescriptor, bool) {
	path, ok := fsys.Canonical(filepath.Join(dir, manifestFileName))
	if !ok {
		return PackageDescriptor{}, false
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return PackageDescriptor{}, false
	}

	// Non-string values ("types": false) are treated as a malformed manifest.
	var descriptor PackageDescriptor
	if err := json.Unmarshal(data, &descriptor); err != nil {
		return PackageDescriptor{}, false
	}
	return descriptor, true
}
