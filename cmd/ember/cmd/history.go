package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	mdwstringx "github.com/msto63/ember/foundation/utils/stringx"
	"github.com/msto63/ember/internal/journal"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit  int
		failed bool
		source string
		stats  bool
		prune  bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded parse results",
		Long: `Lists entries of the parse journal, newest first. Results are
recorded by parse, check and watch with --record, or always when the
journal is enabled in the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" && format != "yaml" {
				return mdwerror.Newf("unknown format %q (want text, json or yaml)", format).
					WithCode(mdwerror.CodeInvalidInput)
			}

			store, err := journal.Open(journal.Config{Path: a.cfg.Journal.Path})
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if prune {
				deleted, err := store.Prune(ctx, a.cfg.Retention())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "pruned %d entries older than %d days\n", deleted, a.cfg.Journal.RetentionDays)
				return nil
			}

			if stats {
				s, err := store.Stats(ctx)
				if err != nil {
					return err
				}
				return writeStats(out, format, s)
			}

			entries, err := store.Query(ctx, journal.Filter{
				Source:     source,
				OnlyFailed: failed,
				Limit:      limit,
			})
			if err != nil {
				return err
			}
			return writeEntries(out, format, entries)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries")
	cmd.Flags().BoolVar(&failed, "failed", false, "Only show failed parses")
	cmd.Flags().StringVar(&source, "source", "", "Only show entries for this source name")
	cmd.Flags().BoolVar(&stats, "stats", false, "Show journal statistics instead of entries")
	cmd.Flags().BoolVar(&prune, "prune", false, "Delete entries older than the configured retention")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")

	return cmd
}

func writeEntries(w io.Writer, format string, entries []*journal.Entry) error {
	switch format {
	case "json":
		if entries == nil {
			entries = []*journal.Entry{}
		}
		return writeJSON(w, entries)
	case "yaml":
		return writeYAML(w, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no entries"))
		return nil
	}

	for _, e := range entries {
		status := okStyle.Render("ok  ")
		detail := fmt.Sprintf("%d nodes", e.Nodes)
		if !e.Success {
			status = errorStyle.Render("FAIL")
			detail = e.Error
			if e.Line > 0 {
				detail = fmt.Sprintf("%d:%d %s", e.Line, e.Column, e.Error)
			}
		}
		fmt.Fprintf(w, "%s %s %s %s %s\n",
			mutedStyle.Render(e.Timestamp.Format(time.DateTime)),
			status,
			mdwstringx.PadRight(e.Source, 24, ' '),
			mutedStyle.Render(e.Hash[:min(12, len(e.Hash))]),
			mdwstringx.Truncate(detail, 80, "..."))
	}
	return nil
}

func writeStats(w io.Writer, format string, s *journal.Stats) error {
	switch format {
	case "json":
		return writeJSON(w, s)
	case "yaml":
		return writeYAML(w, s)
	}

	fmt.Fprintln(w, titleStyle.Render("Parse journal"))
	fmt.Fprintf(w, "  entries:  %d\n", s.Total)
	fmt.Fprintf(w, "  failed:   %d\n", s.Failed)
	fmt.Fprintf(w, "  sources:  %d\n", s.Sources)
	if !s.LastEntry.IsZero() {
		fmt.Fprintf(w, "  last:     %s\n", s.LastEntry.Format(time.DateTime))
	}

	codes := make([]string, 0, len(s.ByCode))
	for code := range s.ByCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(w, "  %s %d\n", mdwstringx.PadRight(code+":", 18, ' '), s.ByCode[code])
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
