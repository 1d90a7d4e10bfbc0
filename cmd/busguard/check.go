package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"busguard/internal/config"
	"busguard/internal/diag"
	"busguard/internal/diagfmt"
	"busguard/internal/driver"
	"busguard/internal/observ"
	"busguard/internal/ui"
	"busguard/internal/version"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [paths...]",
		Short: "Check event bus listeners",
		Long: `Check @SubscribeEvent listeners in the given Java files or directories.
Without paths the source directories of busguard.toml are checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, a, args)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	cmd.Flags().Int("jobs", 0, "parallel parse workers (0 = GOMAXPROCS)")
	cmd.Flags().Int("workers", 0, "listener validation pool size (0 = sequential)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes")
	cmd.Flags().Bool("fullpath", false, "print absolute file paths")
	cmd.Flags().Bool("no-info", false, "hide the processor banner")
	cmd.Flags().Int8("context", 0, "lines of source context around each diagnostic")
	cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	cmd.Flags().String("manifest", "", "path to busguard.toml (default: search upwards)")
	cmd.Flags().Bool("report-unresolved", false, "warn about type names that do not resolve")
	return cmd
}

func runCheck(cmd *cobra.Command, a *app, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := diagfmt.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	noInfo, err := cmd.Flags().GetBool("no-info")
	if err != nil {
		return fmt.Errorf("failed to get no-info flag: %w", err)
	}
	contextLines, err := cmd.Flags().GetInt8("context")
	if err != nil {
		return fmt.Errorf("failed to get context flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	manifestPath, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return fmt.Errorf("failed to get manifest flag: %w", err)
	}
	reportUnresolved, err := cmd.Flags().GetBool("report-unresolved")
	if err != nil {
		return fmt.Errorf("failed to get report-unresolved flag: %w", err)
	}

	manifest, err := resolveManifest(manifestPath, args)
	if err != nil {
		return err
	}

	machine := format == diagfmt.FormatJSON || format == diagfmt.FormatSARIF
	timer := observ.NewTimer()
	opts := driver.Options{
		Inputs:            args,
		Manifest:          manifest,
		Jobs:              a.settings.Jobs,
		Workers:           a.settings.Workers,
		MaxDiagnostics:    a.settings.MaxDiagnostics,
		ReportUnresolved:  reportUnresolved,
		TimingsDiagnostic: a.settings.Timings && machine,
		Logger:            a.logger,
		Timer:             timer,
	}

	var res *driver.Result
	if shouldUseTUI(mode, machine) && !a.settings.Quiet {
		files, derr := driver.Discover(args, manifest)
		if derr != nil {
			return derr
		}
		err = ui.Progress(os.Stderr, "busguard check", files, func(sink driver.ProgressSink) error {
			opts.Progress = sink
			var cerr error
			res, cerr = driver.Check(cmd.Context(), opts)
			return cerr
		})
	} else {
		res, err = driver.Check(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	if noInfo || a.settings.Quiet {
		res.Bag.Filter(func(d diag.Diagnostic) bool {
			if d.Code == diag.ProcInfo {
				return false
			}
			return !a.settings.Quiet || d.Severity != diag.SevInfo
		})
	}

	pathMode := diagfmt.PathModeRelative
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	renderOpts := diagfmt.RenderOpts{
		Format: format,
		Pretty: diagfmt.PrettyOpts{
			Color:     a.useColor(cmd.OutOrStdout()),
			Context:   contextLines,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		},
		JSON: diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		},
		Sarif: diagfmt.SarifRunMeta{
			ToolName:       "busguard",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args,
		},
	}
	if err := diagfmt.Render(cmd.OutOrStdout(), res.Bag, res.FileSet, renderOpts); err != nil {
		return fmt.Errorf("failed to render diagnostics: %w", err)
	}

	if !a.settings.Quiet && !machine {
		if res.Dropped > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "... %d more diagnostics not shown (--max-diagnostics)\n", res.Dropped)
		}
		if a.settings.Timings {
			fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
		}
	}

	a.logger.Debug("check rendered",
		zap.String("format", format.String()),
		zap.Int("diagnostics", res.Bag.Len()))

	if res.HasErrors() {
		return errFindings
	}
	return nil
}

// resolveManifest loads an explicit manifest or looks for one next to the
// first input. A nil manifest selects the built-in defaults.
func resolveManifest(path string, inputs []string) (*config.Manifest, error) {
	if path != "" {
		return config.LoadManifest(path)
	}
	start := "."
	if len(inputs) > 0 {
		start = inputs[0]
		if info, err := os.Stat(start); err == nil && !info.IsDir() {
			start = filepath.Dir(start)
		}
	}
	m, err := config.DiscoverManifest(start)
	if errors.Is(err, config.ErrNoManifest) {
		return nil, nil
	}
	return m, err
}
