// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/jose-harvester/internal/store"
	"github.com/pdiddy/jose-harvester/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump harvested records as a table, JSON, or YAML",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", defaultDatabase, "path to the SQLite database")
	exportCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	s, err := store.Open(output)
	if err != nil {
		return err
	}
	defer s.Close()

	articles, err := s.ListArticles(context.Background())
	if err != nil {
		return err
	}

	switch format {
	case "table":
		formatTable(articles, os.Stdout)
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(articles)
	case "yaml":
		data, err := yaml.Marshal(articles)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (want table, json, or yaml)", format)
	}
}

// formatTable writes records as a human-readable table.
func formatTable(articles []types.Article, w io.Writer) {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No records.")
		return
	}

	fmt.Fprintf(w, "%-60s  %-24s  %-18s  %-12s\n", "Title", "Authors", "Date", "Status")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, a := range articles {
		fmt.Fprintf(w, "%-60s  %-24s  %-18s  %-12s\n",
			truncate(a.Title, 60), formatAuthors(a.Authors),
			truncate(a.PublicationDate, 18), truncate(a.Status, 12))
	}

	fmt.Fprintf(w, "\n%d records\n", len(articles))
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 24)
	default:
		return truncate(authors[0], 18) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
