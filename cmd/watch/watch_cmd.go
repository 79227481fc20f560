package watch

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/LegacyCodeHQ/tsdeps/cmd/graph"
	"github.com/LegacyCodeHQ/tsdeps/cmd/graph/formatters"
	"github.com/LegacyCodeHQ/tsdeps/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

type watchOptions struct {
	project        graph.ProjectOptions
	outputFormat   string
	showUnresolved bool
	port           int
}

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <entry>",
		Short: "Re-render the import graph whenever a loaded file changes",
		Long: `Load the import graph of a TypeScript entry file, print it, and print it again
every time one of the loaded files, a package.json or the project file changes.

With --port the graph is also served as a live-updating SVG page.

Examples:
  tsdeps watch src/main.ts -f text
  tsdeps watch src/main.ts --port 4900`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args[0])
		},
	}

	opts.project.AddFlags(cmd)
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", formatters.OutputFormatDOT.String(),
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().BoolVarP(&opts.showUnresolved, "unresolved", "u", false, "Show specifiers that resolved to no file")
	cmd.Flags().IntVarP(&opts.port, "port", "P", 0, "Serve a live SVG view on this port (0 disables the server)")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions, entry string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s := &session{
		cmd:    cmd,
		opts:   opts,
		entry:  entry,
		logger: logging.FromContext(ctx),
	}

	if opts.port > 0 {
		s.broker = newBroker()
		srv := newServer(s.broker, opts.port)
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			return fmt.Errorf("failed to listen on port %d: %w", opts.port, err)
		}
		go srv.Serve(ln)
		defer srv.Close()
		fmt.Fprintf(cmd.ErrOrStderr(), "Serving at http://localhost:%d\n", opts.port)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching imports of %s, press Ctrl+C to stop\n", entry)
	return s.watch(ctx, watcher)
}
