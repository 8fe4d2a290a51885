package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/wizard/internal/recent"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently saved documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		store, err := recent.Open(cfg.Recent.DBPath)
		if err != nil {
			return fmt.Errorf("opening recent documents: %w", err)
		}
		defer func() { _ = store.Close() }()

		entries, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(entries)
		}
		return writeRecent(cmd.OutOrStdout(), entries)
	},
}

func init() {
	recentCmd.Flags().IntP("limit", "n", 10, "maximum number of documents (0 for all)")
	recentCmd.Flags().Bool("json", false, "print JSON")
}

func writeRecent(w io.Writer, entries []recent.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no saved documents")
		return err
	}
	for _, e := range entries {
		_, err := fmt.Fprintf(w, "%s  %7d B  %5d spans  %3dx  %s\n",
			e.SavedAt.Local().Format(time.DateTime), e.Bytes, e.Spans, e.Saves, e.Path)
		if err != nil {
			return err
		}
	}
	return nil
}
