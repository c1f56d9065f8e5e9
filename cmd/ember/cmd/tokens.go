package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	"github.com/msto63/ember/foundation/lang/token"
	mdwstringx "github.com/msto63/ember/foundation/utils/stringx"
)

type tokenView struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func newTokensCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return mdwerror.Newf("unknown format %q (want text or json)", format).
					WithCode(mdwerror.CodeInvalidInput)
			}

			name, source, err := a.readSource(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			tokens, err := a.engine.Tokenize(name, source)
			if err != nil {
				printDiagnostic(cmd.ErrOrStderr(), err, name, source)
				return reportedError{err}
			}

			if format == "json" {
				views := make([]tokenView, 0, len(tokens))
				for _, tok := range tokens {
					views = append(views, tokenView{
						Kind:   tok.Kind.String(),
						Text:   tok.Text,
						Line:   tok.Pos.Line,
						Column: tok.Pos.Column,
					})
				}
				data, err := json.MarshalIndent(views, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			for _, tok := range tokens {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					mdwstringx.PadRight(tok.Pos.String(), 8, ' '),
					mdwstringx.PadRight(tok.Kind.String(), 12, ' '),
					tokenText(tok))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")

	return cmd
}

// tokenText shows string tokens quoted and omits the text of EOF
func tokenText(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return ""
	case token.String, token.Illegal:
		return fmt.Sprintf("%q", tok.Text)
	default:
		return tok.Text
	}
}
