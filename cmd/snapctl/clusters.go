// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/snapgraph/internal/discovery"
)

// ClustersOutput is the result of a clustering pass.
type ClustersOutput struct {
	Records  int                        `json:"records"`
	Count    int                        `json:"count"`
	Clusters []discovery.ContentCluster `json:"clusters"`
}

func newClustersCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "Group the corpus into content clusters",
		Long: `Run one clustering pass over every record and print the clusters.

Examples:
  snapctl --store ./data clusters
  snapctl --corpus screenshots.json clusters --format human`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openRecords(ctx, opts)
			if err != nil {
				return err
			}
			defer closeStore(s)

			corpus, err := s.ListRecords(ctx)
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}

			engine, err := newEngine(opts)
			if err != nil {
				return err
			}
			clusters, err := engine.FindClusters(ctx, corpus)
			if err != nil {
				return fmt.Errorf("clustering failed: %w", err)
			}
			if clusters == nil {
				clusters = []discovery.ContentCluster{}
			}

			return writeOutput(cmd, opts, &ClustersOutput{
				Records:  len(corpus),
				Count:    len(clusters),
				Clusters: clusters,
			})
		},
	}
}
