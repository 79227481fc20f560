package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("os.MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("os.WriteFile() error = %v", err)
		}
	}
	return dir
}

func runGraphCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), err
}

var sampleProject = map[string]string{
	"src/main.ts":                           "import { util } from './util';\nimport React from 'react';\nimport { z } from 'zod';\n",
	"src/util.ts":                           "import { Options } from './types';\nexport const util = 1;\n",
	"src/types.d.ts":                        "export interface Options {}\n",
	"node_modules/zod/package.json":         `{"types": "lib/index.d.ts"}`,
	"node_modules/zod/lib/index.d.ts":       "export declare const z: unknown;\n",
	"node_modules/@types/unused/index.d.ts": "",
}

func TestGraph_RendersDOTEdges(t *testing.T) {
	dir := writeProject(t, sampleProject)

	output, err := runGraphCommand(t, "src/main.ts", "-r", dir)
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	for _, edge := range []string{
		`"main.ts" -> "util.ts"`,
		`"main.ts" -> "index.d.ts"`,
		`"util.ts" -> "types.d.ts"`,
	} {
		if !strings.Contains(output, edge) {
			t.Fatalf("expected edge %s, got:\n%s", edge, output)
		}
	}
	if strings.Contains(output, "unresolved:react") {
		t.Fatalf("unresolved specifiers should be hidden by default, got:\n%s", output)
	}
	if !strings.Contains(output, "main.ts • 4 files") {
		t.Fatalf("expected label with entry and file count, got:\n%s", output)
	}
}

func TestGraph_ShowsUnresolved(t *testing.T) {
	dir := writeProject(t, sampleProject)

	output, err := runGraphCommand(t, "src/main.ts", "-r", dir, "-u", "-f", "text")
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if !strings.Contains(output, "?? react") {
		t.Fatalf("expected unresolved react import, got:\n%s", output)
	}
}

func TestGraph_ProjectFileSetsDefaults(t *testing.T) {
	files := map[string]string{
		"tsdeps.toml": "format = \"json\"\nshow_unresolved = true\nworkers = 1\n",
	}
	for k, v := range sampleProject {
		files[k] = v
	}
	dir := writeProject(t, files)

	output, err := runGraphCommand(t, "src/main.ts", "-r", dir)
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}
	if !strings.HasPrefix(output, "{") || !strings.Contains(output, `"specifier": "react"`) {
		t.Fatalf("expected JSON with unresolved specifiers, got:\n%s", output)
	}

	output, err = runGraphCommand(t, "src/main.ts", "-r", dir, "-f", "mermaid")
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}
	if !strings.Contains(output, "flowchart LR") {
		t.Fatalf("expected --format to override the project file, got:\n%s", output)
	}
}

func TestGraph_Between(t *testing.T) {
	dir := writeProject(t, sampleProject)

	output, err := runGraphCommand(t, "src/main.ts", "-r", dir, "-f", "text", "--between", "src/main.ts,src/types.d.ts")
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}

	if strings.Contains(output, "index.d.ts") {
		t.Fatalf("expected zod declarations to be filtered out, got:\n%s", output)
	}
	if !strings.Contains(output, "util.ts") {
		t.Fatalf("expected util.ts on the path, got:\n%s", output)
	}
}

func TestGraph_BetweenRequiresFilesInGraph(t *testing.T) {
	dir := writeProject(t, sampleProject)

	_, err := runGraphCommand(t, "src/main.ts", "-r", dir, "--between", "src/main.ts,src/nope.ts")
	if err == nil || !strings.Contains(err.Error(), "files not found in graph") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestGraph_EntryOutsideRoot(t *testing.T) {
	dir := writeProject(t, sampleProject)
	outside := writeProject(t, map[string]string{"main.ts": ""})

	_, err := runGraphCommand(t, filepath.Join(outside, "main.ts"), "-r", dir)
	if err == nil || !strings.Contains(err.Error(), "within project directory") {
		t.Fatalf("expected entry outside root to fail, got %v", err)
	}
}

func TestGraph_SyntaxErrorFailsUnlessLenient(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"main.ts":   "import './broken';\n",
		"broken.ts": "export const = ;\n",
	})

	_, err := runGraphCommand(t, "main.ts", "-r", dir)
	if err == nil || !strings.Contains(err.Error(), "parse error") {
		t.Fatalf("expected parse error, got %v", err)
	}

	output, err := runGraphCommand(t, "main.ts", "-r", dir, "--lenient", "-f", "text")
	if err != nil {
		t.Fatalf("cmd.Execute() with --lenient error = %v", err)
	}
	if !strings.Contains(output, "-> broken.ts") {
		t.Fatalf("expected broken.ts edge, got:\n%s", output)
	}
}

func TestGraph_UnknownFormat(t *testing.T) {
	dir := writeProject(t, sampleProject)

	_, err := runGraphCommand(t, "src/main.ts", "-r", dir, "-f", "png")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestGraph_URL(t *testing.T) {
	dir := writeProject(t, sampleProject)

	output, err := runGraphCommand(t, "src/main.ts", "-r", dir, "-f", "mermaid", "--url")
	if err != nil {
		t.Fatalf("cmd.Execute() error = %v", err)
	}
	if !strings.HasPrefix(output, "https://mermaid.live/edit#base64:") {
		t.Fatalf("expected mermaid.live URL, got:\n%s", output)
	}
}
