package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/ember/pkg/core/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// no configuration needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ember v%s\n", version.Release)
			fmt.Fprintf(out, "  Language:   %s\n", version.Language)
			fmt.Fprintf(out, "  Journal:    %s\n", version.Journal)
			fmt.Fprintf(out, "  Git Commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  Build Date: %s\n", version.BuildDate)
			fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
