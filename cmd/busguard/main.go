package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"busguard/internal/config"
	"busguard/internal/logging"
	"busguard/internal/prof"
	"busguard/internal/version"
)

// errFindings signals that the command ran but reported errors; main exits 1
// without printing anything else.
var errFindings = errors.New("errors reported")

// app holds what the persistent pre-run sets up for every subcommand.
type app struct {
	settings config.Settings
	logger   *zap.Logger
	cleanup  []func()
}

func (a *app) close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
	a.cleanup = nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "busguard",
		Short:         "Forge event bus listener checker",
		Long:          `busguard checks @SubscribeEvent listeners in Java sources against the Forge event bus rules`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("log-level", "warn", "log level (debug|info|warn|error)")
	flags.String("log-format", "console", "log encoding (console|json)")
	flags.String("log-file", "", "also write json logs to this file (rotated)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|phase|detail|debug)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson|otel)")
	flags.String("cpuprofile", "", "write a CPU profile to this file")
	flags.String("memprofile", "", "write a heap profile to this file on exit")
	flags.String("gotrace", "", "write a Go runtime trace to this file")

	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newDeclsCmd(a))
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd(a))
	return rootCmd
}

// setup loads settings and attaches the logger and tracer to the command context.
func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(cmd.Flags(), userConfigDir())
	if err != nil {
		return err
	}
	a.settings = settings

	logger, err := logging.New(settings.Logging())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger
	a.cleanup = append(a.cleanup, func() { _ = logger.Sync() })
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

	cleanup, err := setupTracing(cmd, logger)
	if err != nil {
		return err
	}
	a.cleanup = append(a.cleanup, cleanup)

	return a.startProfiling(cmd)
}

func (a *app) startProfiling(cmd *cobra.Command) error {
	var opts prof.Options
	var err error
	if opts.CPU, err = cmd.Flags().GetString("cpuprofile"); err != nil {
		return fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if opts.Mem, err = cmd.Flags().GetString("memprofile"); err != nil {
		return fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if opts.Trace, err = cmd.Flags().GetString("gotrace"); err != nil {
		return fmt.Errorf("failed to get gotrace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}
	session, err := prof.Start(opts, logging.Named(a.logger, "prof"))
	if err != nil {
		return err
	}
	a.cleanup = append(a.cleanup, func() { _ = session.Stop() })
	return nil
}

// useColor resolves the --color setting against the output stream.
func (a *app) useColor(w io.Writer) bool {
	switch a.settings.Color {
	case "on":
		return true
	case "off":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		f, ok := w.(*os.File)
		return ok && isTerminal(f)
	}
}

func userConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "busguard")
}

// main builds the command tree and executes it.
// Errors other than reported findings are printed to stderr; both exit with status 1.
func main() {
	a := &app{}
	rootCmd := newRootCmd(a)
	err := rootCmd.Execute()
	a.close()
	if err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintf(os.Stderr, "busguard: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
