package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect relnotes configuration",
		Long: `Inspect relnotes configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (RELNOTES_*)
  3. Explicit config file (--config)
  4. Project config (.relnotes.yml, .relnotes.yaml or .relnotes.json)
  5. User config (~/.config/relnotes/config.yml)
  6. Built-in defaults`,
		Example: `  # Show the effective configuration
  relnotes config show

  # Show where each value came from
  relnotes config show --sources

  # List every key
  relnotes config keys

  # Write a commented .relnotes.yml
  relnotes config init`,
	}
	cmd.GroupID = GroupConfiguration
	cmd.AddCommand(newConfigShowCmd(), newConfigKeysCmd(), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var sources bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if sources {
				return writeSources(cmd.OutOrStdout(), loaded)
			}
			return writeYAML(cmd.OutOrStdout(), loaded.Configuration)
		},
	}
	cmd.Flags().BoolVar(&sources, "sources", false, "Show the source of each value instead")
	return cmd
}

func newConfigKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List configuration keys with defaults and environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tTYPE\tDEFAULT\tENV\tDESCRIPTION")
			for _, k := range config.SortedKeys() {
				fmt.Fprintf(tw, "%s\t%s\t%q\t%s\t%s\n", k.Path, k.Type, fmt.Sprint(k.Default), k.EnvVar(), k.Description)
			}
			return tw.Flush()
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented .relnotes.yml in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectConfigPaths(".")[0]
			if _, err := os.Stat(path); err == nil && !force {
				return clierrors.NewArgumentError(
					fmt.Sprintf("%s already exists", path),
					"Pass --force to overwrite it",
				)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return clierrors.FileReadError(path, err)
			}

			if err := atomicWriteToFile(path, []byte(config.GetDefaultConfigTemplate())); err != nil {
				return clierrors.FileNotWritable(path, err)
			}
			output.PrintWritten(cmd.ErrOrStderr(), filepath.Clean(path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	return enc.Close()
}

func writeSources(w io.Writer, loaded *config.Loaded) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, k := range config.SortedKeys() {
		source := loaded.Sources[k.Path]
		if source == "" {
			source = config.SourceDefault
		}
		fmt.Fprintf(tw, "%s\t%s\n", k.Path, source)
	}
	for _, f := range loaded.Files {
		fmt.Fprintf(tw, "# file\t%s\n", f)
	}
	return tw.Flush()
}
