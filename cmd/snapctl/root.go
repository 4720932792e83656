// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/snapgraph/internal/api"
	"github.com/tomtom215/snapgraph/internal/config"
	"github.com/tomtom215/snapgraph/internal/discovery"
	"github.com/tomtom215/snapgraph/internal/logging"
	"github.com/tomtom215/snapgraph/internal/store"
	"github.com/tomtom215/snapgraph/internal/validation"
)

// ErrNoSource is returned when neither --store nor --corpus is given.
var ErrNoSource = errors.New("one of --store or --corpus is required")

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	storePath  string
	corpusPath string
	format     string
	logLevel   string

	// cfg is loaded before any command runs: defaults, then the file named
	// by CONFIG_PATH or found in the default paths, then SNAPGRAPH_ variables.
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "snapctl",
		Short: "snapctl - offline Snapgraph client",
		Long: `snapctl imports screenshot records and runs content discovery locally.

Records come from a BadgerDB store directory (--store) or a JSON array of
records (--corpus). A corpus file is loaded into a throwaway in-memory store.

Discovery settings and backup defaults come from the same configuration as
the server: config.yaml (or CONFIG_PATH) and SNAPGRAPH_ environment variables.`,
		Version:       api.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseFormat(opts.format); err != nil {
				return err
			}
			if !logging.ValidLevel(opts.logLevel) {
				return fmt.Errorf("invalid log level: %s", opts.logLevel)
			}
			logging.Init(logging.Config{
				Level:  opts.logLevel,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.SetVersionTemplate("snapctl version {{.Version}}\n")
	root.PersistentFlags().StringVar(&opts.storePath, "store", "", "BadgerDB record store directory")
	root.PersistentFlags().StringVar(&opts.corpusPath, "corpus", "", "JSON file holding an array of records")
	root.PersistentFlags().StringVar(&opts.format, "format", string(FormatJSON), "Output format (json, human)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newImportCmd(opts),
		newRecommendCmd(opts),
		newClustersCmd(opts),
		newBackupCmd(opts),
	)
	return root
}

// openRecords opens the configured record source. The returned store must
// be closed by the caller.
func openRecords(ctx context.Context, opts *globalOptions) (*store.RecordStore, error) {
	logger := logging.WithComponent("store")

	switch {
	case opts.storePath != "" && opts.corpusPath != "":
		return nil, errors.New("--store and --corpus are mutually exclusive")

	case opts.storePath != "":
		return store.Open(store.Config{Path: opts.storePath}, logger)

	case opts.corpusPath != "":
		records, err := readRecords(opts.corpusPath)
		if err != nil {
			return nil, err
		}
		s, err := store.Open(store.Config{InMemory: true}, logger)
		if err != nil {
			return nil, err
		}
		if err := s.PutRecords(ctx, records); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to load corpus: %w", err)
		}
		return s, nil

	default:
		return nil, ErrNoSource
	}
}

// readRecords decodes and validates a JSON array of records.
func readRecords(path string) ([]discovery.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []discovery.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i := range records {
		if verr := validation.ValidateStruct(&records[i]); verr != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, records[i].ID, verr)
		}
	}
	return records, nil
}

// newEngine builds an engine from the loaded discovery settings.
func newEngine(opts *globalOptions) (*discovery.Engine, error) {
	cfg := opts.cfg
	if cfg == nil {
		cfg = config.Default()
	}
	return discovery.NewEngine(cfg.Discovery.Settings(), logging.WithComponent("discovery"))
}

// writeOutput formats resp and writes it to the command's stdout.
func writeOutput(cmd *cobra.Command, opts *globalOptions, resp interface{}) error {
	format, err := parseFormat(opts.format)
	if err != nil {
		return err
	}
	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// closeStore closes s, logging rather than masking the command's result.
func closeStore(s *store.RecordStore) {
	if err := s.Close(); err != nil {
		logging.Warn().Err(err).Msg("failed to close record store")
	}
}
