// Package config reads the optional tsdeps.toml project file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the project file looked up from the entry's directory upwards.
const FileName = "tsdeps.toml"

// Config holds defaults for the command-line flags. Flags given explicitly
// always override it.
type Config struct {
	Format            string `toml:"format"`
	Workers           int    `toml:"workers"`
	ManifestFirst     bool   `toml:"manifest_first"`
	ShowUnresolved    bool   `toml:"show_unresolved"`
	AllowSyntaxErrors bool   `toml:"allow_syntax_errors"`
}

// Default returns the settings used when no project file exists.
func Default() Config {
	return Config{
		Format:  "dot",
		Workers: 4,
	}
}

// Load reads the file at path over Default. Unknown keys are an error so that
// typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Workers < 0 {
		return Config{}, fmt.Errorf("%s: workers must not be negative, got %d", path, cfg.Workers)
	}
	return cfg, nil
}

// Find returns the nearest tsdeps.toml in dir or one of its ancestors.
func Find(dir string) (string, bool) {
	for current := dir; ; {
		candidate := filepath.Join(current, FileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// Resolve loads explicit when it is set, otherwise the nearest project file
// above dir, otherwise Default. The returned path is empty when no file was used.
func Resolve(explicit, dir string) (Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, "", fmt.Errorf("config file %s does not exist", explicit)
		}
		return cfg, explicit, err
	}
	if path, ok := Find(dir); ok {
		cfg, err := Load(path)
		return cfg, path, err
	}
	return Default(), "", nil
}
