// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ImportOutput is the result of an import.
type ImportOutput struct {
	File     string `json:"file"`
	Imported int    `json:"imported"`
	Batches  int    `json:"batches"`
	Total    int    `json:"total"`
}

func newImportCmd(opts *globalOptions) *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import records from a JSON file into the store",
		Long: `Import a JSON array of records into the store given by --store.

Records are validated before anything is written. Existing records with the
same ID are replaced.

Examples:
  snapctl --store ./data import screenshots.json
  snapctl --store ./data import screenshots.json --batch 500 --format human`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.storePath == "" {
				return errors.New("import requires --store")
			}
			if opts.corpusPath != "" {
				return errors.New("import does not accept --corpus")
			}
			if batchSize < 1 {
				return fmt.Errorf("invalid batch size: %d", batchSize)
			}

			records, err := readRecords(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := openRecords(ctx, opts)
			if err != nil {
				return err
			}
			defer closeStore(s)

			out := &ImportOutput{File: args[0]}
			for start := 0; start < len(records); start += batchSize {
				end := min(start+batchSize, len(records))
				if err := s.PutRecords(ctx, records[start:end]); err != nil {
					return fmt.Errorf("import stopped after %d records: %w", out.Imported, err)
				}
				out.Imported += end - start
				out.Batches++
			}

			if out.Total, err = s.Count(ctx); err != nil {
				return err
			}
			return writeOutput(cmd, opts, out)
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch", 1000, "Records written per transaction")
	return cmd
}
