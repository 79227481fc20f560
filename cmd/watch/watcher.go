package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/LegacyCodeHQ/tsdeps/cmd/graph"
	"github.com/LegacyCodeHQ/tsdeps/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/tsdeps/depgraph"
	"github.com/LegacyCodeHQ/tsdeps/internal/config"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const debounceInterval = 300 * time.Millisecond

// session reloads and re-renders one entry file's graph.
type session struct {
	cmd    *cobra.Command
	opts   *watchOptions
	entry  string
	broker *broker
	logger *log.Logger
}

// watch renders the graph once, then again after every burst of relevant
// changes. Only the directories holding loaded files are watched, so the set
// is synced after each rebuild.
func (s *session) watch(ctx context.Context, watcher *fsnotify.Watcher) error {
	dirs, err := s.rebuild(ctx)
	if err != nil {
		return fmt.Errorf("initial graph build failed: %w", err)
	}
	watched, err := syncWatchDirs(nil, dirs, watcher.Add, watcher.Remove)
	if err != nil {
		s.logger.Warn("some directories are not watched", "err", err)
	}

	rebuilds := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevantChange(event) {
				continue
			}
			s.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				select {
				case rebuilds <- struct{}{}:
				default:
				}
			})

		case <-rebuilds:
			dirs, err := s.rebuild(ctx)
			if err != nil {
				// Files are often broken halfway through an edit; wait for the next save.
				s.logger.Error("graph rebuild failed", "err", err)
				continue
			}
			if watched, err = syncWatchDirs(watched, dirs, watcher.Add, watcher.Remove); err != nil {
				s.logger.Warn("some directories are not watched", "err", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "err", err)
		}
	}
}

// rebuild reopens the project, so edits to the project file apply, loads the
// graph, prints it and publishes it. It returns the directories to watch.
func (s *session) rebuild(ctx context.Context) (map[string]bool, error) {
	project, err := graph.OpenProject(s.cmd, &s.opts.project, s.entry)
	if err != nil {
		return nil, err
	}
	format, showUnresolved := project.DisplayOptions(s.cmd, s.opts.outputFormat, s.opts.showUnresolved)
	formatter, err := formatters.NewFormatter(format)
	if err != nil {
		return nil, err
	}

	g, err := project.Load(ctx)
	if err != nil {
		return nil, err
	}
	defer g.Close()

	adjacency := g.DependencyGraph()
	output, err := project.Render(formatter, format, g, adjacency, showUnresolved)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(s.cmd.OutOrStdout(), output)

	if s.broker != nil {
		s.publish(ctx, project, g, adjacency, showUnresolved)
	}

	dirs := make(map[string]bool, len(g.Parsed)+1)
	for path := range g.Parsed {
		dirs[filepath.Dir(path)] = true
	}
	if project.ConfigPath != "" {
		dirs[filepath.Dir(project.ConfigPath)] = true
	}
	return dirs, nil
}

// publish sends the graph to the live view as SVG.
func (s *session) publish(ctx context.Context, project *graph.Project, g *depgraph.Graph, adjacency depgraph.DependencyGraph, showUnresolved bool) {
	dotFormatter, err := formatters.NewFormatter(formatters.OutputFormatDOT.String())
	if err != nil {
		s.logger.Error("live view render failed", "err", err)
		return
	}
	dot, err := project.Render(dotFormatter, formatters.OutputFormatDOT.String(), g, adjacency, showUnresolved)
	if err != nil {
		s.logger.Error("live view render failed", "err", err)
		return
	}
	svg, err := formatters.RenderSVG(ctx, dot)
	if err != nil {
		s.logger.Error("live view render failed", "err", err)
		return
	}
	s.broker.publish(string(svg))
}

// isRelevantChange reports whether event can change the graph: a TypeScript
// source or declaration file, a package manifest, the project file, or a new
// directory that may hold an index file.
func isRelevantChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	switch base := filepath.Base(event.Name); {
	case strings.HasSuffix(base, ".ts"):
		return true
	case base == "package.json", base == config.FileName:
		return true
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		return err == nil && info.IsDir()
	}
	return false
}

// syncWatchDirs adds the directories in want that are not in watched and
// removes those no longer wanted. Directories that vanished in between are
// skipped. It returns the new watched set and any other failures to add.
func syncWatchDirs(watched, want map[string]bool, add, remove func(string) error) (map[string]bool, error) {
	next := make(map[string]bool, len(want))
	var errs []error

	for _, dir := range sortedKeys(want) {
		if watched[dir] {
			next[dir] = true
			continue
		}
		if err := add(dir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("watch %s: %w", dir, err))
			}
			continue
		}
		next[dir] = true
	}

	for _, dir := range sortedKeys(watched) {
		if !want[dir] {
			// The directory may already be gone, which drops the watch anyway.
			_ = remove(dir)
		}
	}
	return next, errors.Join(errs...)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
