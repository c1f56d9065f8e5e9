package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	mdwast "github.com/msto63/ember/foundation/lang/ast"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		format    string
		positions bool
		record    bool
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the syntax tree of a source file",
		Long: `Parses FILE ("-" reads standard input) and prints the result.

Formats:
  tree    - indented node tree (default)
  source  - canonical source printed back from the tree
  json    - tree as JSON
  yaml    - tree as YAML`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			render, err := treeRenderer(format, positions, a)
			if err != nil {
				return err
			}

			rec, err := a.openRecorder(cmd.Context(), record)
			if err != nil {
				return err
			}
			defer rec.close()

			res := a.parse(cmd.Context(), args[0], cmd.InOrStdin())
			rec.record(cmd.Context(), res)

			if res.err != nil {
				if !res.read {
					return res.err
				}
				printDiagnostic(cmd.ErrOrStderr(), res.err, res.name, res.source)
				return reportedError{res.err}
			}

			out, err := render(res.root)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "tree", "Output format: tree, source, json or yaml")
	cmd.Flags().BoolVar(&positions, "positions", false, "Include line:column positions in tree output")
	cmd.Flags().BoolVar(&record, "record", false, "Record the result in the parse journal")

	return cmd
}

func treeRenderer(format string, positions bool, a *app) (func(*mdwast.Compound) (string, error), error) {
	switch format {
	case "tree":
		return func(root *mdwast.Compound) (string, error) {
			dv := mdwast.NewDumpVisitor(positions)
			root.Accept(dv)
			return dv.String(), nil
		}, nil
	case "source":
		return func(root *mdwast.Compound) (string, error) {
			return a.engine.Print(root) + "\n", nil
		}, nil
	case "json":
		return func(root *mdwast.Compound) (string, error) {
			data, err := json.MarshalIndent(mdwast.Export(root), "", "  ")
			if err != nil {
				return "", err
			}
			return string(data) + "\n", nil
		}, nil
	case "yaml":
		return func(root *mdwast.Compound) (string, error) {
			data, err := yaml.Marshal(mdwast.Export(root))
			if err != nil {
				return "", err
			}
			return string(data), nil
		}, nil
	default:
		return nil, mdwerror.Newf("unknown format %q (want tree, source, json or yaml)", format).
			WithCode(mdwerror.CodeInvalidInput)
	}
}
