package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/ember/foundation/core/log"
	"github.com/msto63/ember/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		record   bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch DIR|FILE...",
		Short: "Re-check source files when they change",
		Long: `Watches the given directories (non-recursively) and files and
parses each source file again after it changed. Stops on Ctrl-C.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rec, err := a.openRecorder(ctx, record)
			if err != nil {
				return err
			}
			defer rec.close()

			if !cmd.Flags().Changed("debounce") {
				debounce = a.cfg.Watch.Debounce.Duration
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			handler := func(ctx context.Context, ev watch.Event) {
				if ev.Removed {
					fmt.Fprintf(out, "%s %s\n", mutedStyle.Render("removed"), ev.Path)
					return
				}

				res := a.parse(ctx, ev.Path, nil)
				rec.record(ctx, res)

				if res.err != nil {
					a.logger.Warn("Parse failed", mdwlog.Fields{"source": res.name, "error": res.err.Error()})
					printDiagnostic(errOut, res.err, res.name, res.source)
					return
				}
				fmt.Fprintf(out, "%s %s %s\n", okStyle.Render("ok"), res.name,
					mutedStyle.Render(fmt.Sprintf("(%d statements)", len(res.root.Statements))))
			}

			w, err := watch.New(args, handler, watch.Options{
				Debounce:   debounce,
				Extensions: a.cfg.Watch.Extensions,
				Logger:     a.logger,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s %v\n", titleStyle.Render("watching"), w.Dirs())
			return w.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&record, "record", false, "Record results in the parse journal")
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "Quiet period before a changed file is parsed")

	return cmd
}
