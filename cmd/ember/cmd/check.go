package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	mdwlog "github.com/msto63/ember/foundation/core/log"
	mdwast "github.com/msto63/ember/foundation/lang/ast"
	"github.com/msto63/ember/internal/watch"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		record bool
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "check FILE|DIR...",
		Short: "Validate source files",
		Long: `Parses every FILE and every source file below each DIR and reports
syntax errors with their position. Redefinitions at the top level are
reported as warnings. Exits with status 1 if any source fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandSources(args, a.cfg.Watch.Extensions)
			if err != nil {
				return err
			}

			rec, err := a.openRecorder(cmd.Context(), record)
			if err != nil {
				return err
			}
			defer rec.close()

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			failed := 0
			for _, file := range files {
				res := a.parse(cmd.Context(), file, cmd.InOrStdin())
				rec.record(cmd.Context(), res)

				if res.err != nil {
					failed++
					printDiagnostic(errOut, res.err, res.name, res.source)
					continue
				}

				for _, warn := range mdwast.Declare(res.root, res.root.Scope) {
					fmt.Fprintf(errOut, "%s: %s %v\n", locationStyle.Render(res.name), warningStyle.Render("warning:"), warn)
				}
				if !quiet {
					fmt.Fprintf(out, "%s %s %s\n", okStyle.Render("ok"), res.name,
						mutedStyle.Render(fmt.Sprintf("(%d statements, %s)", len(res.root.Statements), res.duration.Round(time.Microsecond))))
				}
			}

			a.logger.Debug("Check finished", mdwlog.Fields{
				"files":  len(files),
				"failed": failed,
			})

			if failed > 0 {
				fmt.Fprintf(errOut, "%s\n", errorStyle.Render(fmt.Sprintf("%d of %d files failed", failed, len(files))))
				return reportedError{mdwerror.Newf("%d of %d files failed", failed, len(files)).
					WithCode(mdwerror.CodeSyntax)}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&record, "record", false, "Record results in the parse journal")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only report failures")

	return cmd
}

// expandSources replaces directories by the source files below them, in
// lexical order. Files named explicitly are kept whatever their extension.
func expandSources(args []string, extensions []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		if arg == "-" {
			files = append(files, arg)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			code := mdwerror.CodeInternal
			if os.IsNotExist(err) {
				code = mdwerror.CodeNotFound
			}
			return nil, mdwerror.Wrap(err, "cannot read source").
				WithCode(code).
				WithDetail("source", arg)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && watch.MatchExtension(path, extensions) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, mdwerror.Wrap(err, "cannot list sources").
				WithCode(mdwerror.CodeInternal).
				WithDetail("source", arg)
		}
		sort.Strings(found)
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, mdwerror.New("no source files found").
			WithCode(mdwerror.CodeNotFound)
	}
	return files, nil
}
