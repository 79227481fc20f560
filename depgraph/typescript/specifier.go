package typescript

import "strings"

// SpecifierKind classifies a raw import specifier by its literal prefix.
type SpecifierKind int

const (
	// SpecifierBare names a package, e.g. "lodash" or "@scope/pkg/sub".
	SpecifierBare SpecifierKind = iota
	// SpecifierCore names a Node.js built-in module, e.g. "fs" or "node:fs".
	SpecifierCore
	// SpecifierAbsolute starts with "/".
	SpecifierAbsolute
	// SpecifierRelative starts with "./" or "../".
	SpecifierRelative
	// SpecifierSubpathImport starts with "#" and refers to package.json "imports".
	SpecifierSubpathImport
)

func (k SpecifierKind) String() string {
	switch k {
	case SpecifierCore:
		return "core"
	case SpecifierAbsolute:
		return "absolute"
	case SpecifierRelative:
		return "relative"
	case SpecifierSubpathImport:
		return "subpath-import"
	default:
		return "bare"
	}
}

// nodeBuiltins contains known Node.js built-in module names
var nodeBuiltins = map[string]bool{
	"assert":         true,
	"async_hooks":    true,
	"buffer":         true,
	"child_process":  true,
	"cluster":        true,
	"console":        true,
	"constants":      true,
	"crypto":         true,
	"dgram":          true,
	"dns":            true,
	"domain":         true,
	"events":         true,
	"fs":             true,
	"fs/promises":    true,
	"http":           true,
	"http2":          true,
	"https":          true,
	"inspector":      true,
	"module":         true,
	"net":            true,
	"os":             true,
	"path":           true,
	"path/posix":     true,
	"path/win32":     true,
	"perf_hooks":     true,
	"process":        true,
	"punycode":       true,
	"querystring":    true,
	"readline":       true,
	"repl":           true,
	"stream":         true,
	"string_decoder": true,
	"timers":         true,
	"tls":            true,
	"trace_events":   true,
	"tty":            true,
	"url":            true,
	"util":           true,
	"v8":             true,
	"vm":             true,
	"worker_threads": true,
	"zlib":           true,
}

// IsCoreModule reports whether specifier names a Node.js built-in module.
func IsCoreModule(specifier string) bool {
	if strings.HasPrefix(specifier, "node:") {
		return true
	}
	return nodeBuiltins[specifier]
}

// ClassifySpecifier classifies a specifier. Core module names are checked first,
// then the path prefixes; anything left over is a bare package name.
func ClassifySpecifier(specifier string) SpecifierKind {
	switch {
	case IsCoreModule(specifier):
		return SpecifierCore
	case strings.HasPrefix(specifier, "/"):
		return SpecifierAbsolute
	case strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../"):
		return SpecifierRelative
	case strings.HasPrefix(specifier, "#"):
		return SpecifierSubpathImport
	default:
		return SpecifierBare
	}
}
