package typescript

import (
	"path/filepath"
	"strings"
)

// ResolverOptions tunes specifier resolution.
type ResolverOptions struct {
	// ManifestFirst tries a package's package.json "types"/"typings" entry before
	// the node_modules/<name>.ts guesses. By default those sibling-file guesses
	// come first; the manifest always beats node_modules/<name>/index.*.
	ManifestFirst bool
	// OnProbe, when set, observes every candidate path the resolver tries.
	OnProbe func(candidate string, found bool)
}

// Resolver maps an import specifier, seen in a given file, to the file it loads.
// It follows the Node.js/TypeScript lookup rules restricted to .ts and .d.ts
// files and keeps no state between calls.
type Resolver struct {
	fs   FileSystem
	opts ResolverOptions
}

// NewResolver creates a resolver probing fsys.
func NewResolver(fsys FileSystem, opts ResolverOptions) *Resolver {
	return &Resolver{fs: fsys, opts: opts}
}

// Resolve returns the canonical path of the file specifier refers to when
// imported from fromFile. ok is false when no file matches, which is a normal
// outcome rather than a failure.
func (r *Resolver) Resolve(fromFile, specifier string) (resolved string, ok bool) {
	if specifier == "" {
		return "", false
	}
	dir := filepath.Dir(fromFile)

	switch ClassifySpecifier(specifier) {
	case SpecifierAbsolute:
		return r.probeModule(specifier)
	case SpecifierRelative:
		return r.probeModule(filepath.Join(dir, specifier))
	case SpecifierSubpathImport:
		// package.json "imports" maps are not supported.
		return "", false
	default:
		// Core modules have no file of their own; they are looked up like any
		// other package, which usually lands on @types/node declarations.
		return r.searchNodeModules(dir, specifier)
	}
}

// searchNodeModules walks dir and its ancestors looking for specifier inside
// node_modules, nearest directory first.
func (r *Resolver) searchNodeModules(dir, specifier string) (string, bool) {
	for current := dir; ; {
		if resolved, ok := r.lookupInNodeModules(filepath.Join(current, "node_modules"), specifier); ok {
			return resolved, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

func (r *Resolver) lookupInNodeModules(nodeModules, specifier string) (string, bool) {
	if resolved, ok := r.probeModule(filepath.Join(nodeModules, "@types", "node", specifier)); ok {
		return resolved, true
	}
	if resolved, ok := r.probeModule(filepath.Join(nodeModules, "@types", specifier)); ok {
		return resolved, true
	}

	packageDir := filepath.Join(nodeModules, specifier)
	if r.opts.ManifestFirst {
		if resolved, ok := r.probeManifest(packageDir); ok {
			return resolved, true
		}
		if resolved, ok := r.probe(fileCandidates(packageDir)); ok {
			return resolved, true
		}
	} else {
		if resolved, ok := r.probe(fileCandidates(packageDir)); ok {
			return resolved, true
		}
		if resolved, ok := r.probeManifest(packageDir); ok {
			return resolved, true
		}
	}
	return r.probe(indexCandidates(packageDir))
}

// probeManifest follows packageDir/package.json "types" or "typings".
func (r *Resolver) probeManifest(packageDir string) (string, bool) {
	descriptor, ok := ReadManifest(r.fs, packageDir)
	if !ok {
		return "", false
	}
	entry, ok := descriptor.TypesEntry()
	if !ok {
		return "", false
	}
	return r.probeModule(filepath.Join(packageDir, entry))
}

// probeModule tries p as a file and then as a directory with an index file.
func (r *Resolver) probeModule(p string) (string, bool) {
	if resolved, ok := r.probe(fileCandidates(p)); ok {
		return resolved, true
	}
	return r.probe(indexCandidates(p))
}

func (r *Resolver) probe(candidates []string) (string, bool) {
	for _, candidate := range candidates {
		resolved, ok := r.fs.Canonical(candidate)
		if r.opts.OnProbe != nil {
			r.opts.OnProbe(candidate, ok)
		}
		if ok {
			return resolved, true
		}
	}
	return "", false
}

// fileCandidates lists p itself when it already carries a .ts or .d.ts
// extension, then p.ts and p.d.ts.
func fileCandidates(p string) []string {
	candidates := make([]string, 0, 3)
	if strings.HasSuffix(p, ".ts") {
		candidates = append(candidates, p)
	}
	return append(candidates, p+".ts", p+".d.ts")
}

func indexCandidates(p string) []string {
	return []string{
		filepath.Join(p, "index.ts"),
		filepath.Join(p, "index.d.ts"),
	}
}
