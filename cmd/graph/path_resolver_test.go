package graph

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathResolverResolve_WithProjectBase_ResolvesRelativePathFromRepo(t *testing.T) {
	projectDir := t.TempDir()
	resolver, err := NewPathResolver(projectDir, false)
	if err != nil {
		t.Fatalf("NewPathResolver() error = %v", err)
	}

	resolved, err := resolver.Resolve(RawPath(filepath.Join("src", "main.ts")))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	expected := filepath.Join(projectDir, "src", "main.ts")
	if resolved.String() != expected {
		t.Fatalf("expected %q, got %q", expected, resolved.String())
	}
}

func TestPathResolverResolve_WithoutProjectBase_UsesCurrentWorkingDirectory(t *testing.T) {
	workDir := t.TempDir()
	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("os.Getwd() error = %v", err)
	}
	t.Cleanup(func() {
		if chdirErr := os.Chdir(originalDir); chdirErr != nil {
			t.Fatalf("os.Chdir() cleanup error = %v", chdirErr)
		}
	})
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("os.Chdir() error = %v", err)
	}

	resolver, err := NewPathResolver("", false)
	if err != nil {
		t.Fatalf("NewPathResolver() error = %v", err)
	}

	resolved, err := resolver.Resolve(RawPath("main.ts"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	expected, err := filepath.Abs("main.ts")
	if err != nil {
		t.Fatalf("filepath.Abs() error = %v", err)
	}
	if resolved.String() != expected {
		t.Fatalf("expected %q, got %q", expected, resolved.String())
	}
}

func TestPathResolverResolve_AbsolutePath_Unchanged(t *testing.T) {
	resolver, err := NewPathResolver(t.TempDir(), true)
	if err != nil {
		t.Fatalf("NewPathResolver() error = %v", err)
	}

	absolutePath := filepath.Join(t.TempDir(), "main.ts")
	resolved, err := resolver.Resolve(RawPath(absolutePath))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if resolved.String() != absolutePath {
		t.Fatalf("expected absolute path to be unchanged: %q, got %q", absolutePath, resolved.String())
	}
}

func TestPathResolverResolve_AbsolutePathOutsideProject_Disallowed(t *testing.T) {
	projectDir := t.TempDir()
	resolver, err := NewPathResolver(projectDir, false)
	if err != nil {
		t.Fatalf("NewPathResolver() error = %v", err)
	}

	outsidePath := filepath.Join(t.TempDir(), "main.ts")
	_, err = resolver.Resolve(RawPath(outsidePath))
	if err == nil {
		t.Fatalf("expected error for path outside project, got nil")
	}
}

func TestPathResolverResolve_AbsolutePathOutsideProject_Allowed(t *testing.T) {
	resolver, err := NewPathResolver(t.TempDir(), true)
	if err != nil {
		t.Fatalf("NewPathResolver() error = %v", err)
	}

	outsidePath := filepath.Join(t.TempDir(), "node_modules", "lib", "index.d.ts")
	resolved, err := resolver.Resolve(RawPath(outsidePath))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.String() != outsidePath {
		t.Fatalf("expected %q, got %q", outsidePath, resolved.String())
	}
}

func TestPathResolverResolve_ParentEscapeDisallowed(t *testing.T) {
	resolver, err := NewPathResolver(t.TempDir(), false)
	if err != nil {
		t.Fatalf("NewPathResolver() error = %v", err)
	}

	if _, err := resolver.Resolve(RawPath(filepath.Join("..", "main.ts"))); err == nil {
		t.Fatalf("expected error for path escaping the project, got nil")
	}
}

func TestPathResolverResolve_EmptyPath(t *testing.T) {
	resolver, err := NewPathResolver(t.TempDir(), false)
	if err != nil {
		t.Fatalf("NewPathResolver() error = %v", err)
	}

	if _, err := resolver.Resolve(""); err == nil {
		t.Fatalf("expected error for empty path, got nil")
	}
}
