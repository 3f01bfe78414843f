package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/jose-harvester/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print row counts for the harvested database",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringP("output", "o", defaultDatabase, "path to the SQLite database")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	s, err := store.Open(output)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	total, err := s.CountArticles(ctx)
	if err != nil {
		return err
	}
	byStatus, err := s.CountByStatus(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("articles: %d\n", total)

	statuses := make([]string, 0, len(byStatus))
	for status := range byStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		label := status
		if label == "" {
			label = "(none)"
		}
		fmt.Printf("  %-16s %d\n", label, byStatus[status])
	}
	return nil
}
