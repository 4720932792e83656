// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/snapgraph/internal/logging"
	"github.com/tomtom215/snapgraph/internal/provider"
	"github.com/tomtom215/snapgraph/internal/store"
)

func newRecommendCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recommend <record-id>",
		Short: "Rank records related to a source record",
		Long: `Run one recommendation cycle for a source record against the rest of
the corpus and print the merged result.

Examples:
  snapctl --store ./data recommend shot-0042
  snapctl --corpus screenshots.json recommend shot-0042 --limit 5 --format human`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openRecords(ctx, opts)
			if err != nil {
				return err
			}
			defer closeStore(s)

			engine, err := newEngine(opts)
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = engine.Settings().MaxRecommendations
			}

			records := provider.New(s, provider.DefaultConfig(), logging.WithComponent("provider"))
			source, err := records.Source(ctx, args[0])
			if errors.Is(err, store.ErrRecordNotFound) {
				return fmt.Errorf("record %q not found", args[0])
			}
			if err != nil {
				return err
			}

			result, err := engine.GenerateRecommendations(ctx, source, records.CandidatePool(ctx, source.ID), limit)
			if err != nil {
				return fmt.Errorf("recommendation failed: %w", err)
			}
			return writeOutput(cmd, opts, result)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum related records (default: engine setting)")
	return cmd
}
