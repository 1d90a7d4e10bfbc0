package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"busguard/internal/diagfmt"
	"busguard/internal/driver"
)

func newDeclsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decls [flags] [paths...]",
		Short: "Dump the parsed declaration model",
		Long:  `Parse and resolve the inputs and print the declarations the listener checks operate on.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecls(cmd, a, args)
		},
	}
	cmd.Flags().String("format", "json", "output format (json|msgpack)")
	cmd.Flags().String("manifest", "", "path to busguard.toml (default: search upwards)")
	return cmd
}

func runDecls(cmd *cobra.Command, a *app, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	manifestPath, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return fmt.Errorf("failed to get manifest flag: %w", err)
	}
	manifest, err := resolveManifest(manifestPath, args)
	if err != nil {
		return err
	}

	res, err := driver.Decls(cmd.Context(), driver.Options{
		Inputs:         args,
		Manifest:       manifest,
		Jobs:           a.settings.Jobs,
		MaxDiagnostics: a.settings.MaxDiagnostics,
		Logger:         a.logger,
	})
	if err != nil {
		return err
	}

	// Parse problems go to stderr so stdout stays decodable.
	if res.Bag.Len() > 0 && !a.settings.Quiet {
		diagfmt.Short(cmd.ErrOrStderr(), res.Bag, res.FileSet, diagfmt.PathModeRelative)
	}
	if err := driver.EncodeDecls(cmd.OutOrStdout(), res.Units, format); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errFindings
	}
	return nil
}
