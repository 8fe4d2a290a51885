package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/wizard/markup"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Print the spans of a document",
	Long:  `Classify a document (stdin when no file is given) and print its tag, doctype, comment and string spans.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		summary, _ := cmd.Flags().GetBool("summary")

		var (
			data []byte
			err  error
		)
		if len(args) == 1 && args[0] != "-" {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		text := string(data)
		spans := markup.Classify(text)
		if summary {
			return writeSummary(cmd.OutOrStdout(), format, markup.Count(spans))
		}
		return writeSpans(cmd.OutOrStdout(), format, text, spans)
	},
}

func init() {
	classifyCmd.Flags().String("format", "text", "output format: text, json or yaml")
	classifyCmd.Flags().Bool("summary", false, "print span counts per kind only")
}

// spanRecord is the serialized form of a span.
type spanRecord struct {
	Kind  markup.Kind `json:"kind" yaml:"kind"`
	Start markup.Pos  `json:"start" yaml:"start"`
	End   markup.Pos  `json:"end" yaml:"end"`
	Text  string      `json:"text" yaml:"text"`
}

func writeSpans(w io.Writer, format, text string, spans []markup.Span) error {
	records := make([]spanRecord, 0, len(spans))
	for _, sp := range spans {
		records = append(records, spanRecord{Kind: sp.Kind, Start: sp.Start, End: sp.End, Text: sp.Text(text)})
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		for _, r := range records {
			if _, err := fmt.Fprintf(w, "%s-%s\t%s\t%s\n", r.Start, r.End, r.Kind, strconv.Quote(r.Text)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

func writeSummary(w io.Writer, format string, counts map[markup.Kind]int) error {
	byName := make(map[string]int, len(counts))
	for _, k := range markup.Kinds() {
		byName[k.String()] = counts[k]
	}

	switch format {
	case "json":
		return json.NewEncoder(w).Encode(byName)
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(byName); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		names := make([]string, 0, len(byName))
		for name := range byName {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, err := fmt.Fprintf(w, "%s\t%d\n", name, byName[name]); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}
