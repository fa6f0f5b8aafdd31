package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bji/solxact/internal/build"
	"github.com/bji/solxact/internal/value"
)

// newEncodeCmd builds a transaction from a declarative-value-language
// description given either as trailing CLI words or as a whitespace-split
// of stdin, never both (§6).
func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [words...]",
		Short: "Build a transaction from the declarative value language",
		RunE: func(cmd *cobra.Command, args []string) error {
			var words []string
			if len(args) > 0 {
				words = args
			} else {
				data, err := readStdin()
				if err != nil {
					return err
				}
				words = strings.Fields(string(data))
			}

			tokens, err := value.Tokenize(words)
			if err != nil {
				return err
			}

			req, err := value.ParseEncodeRequest(tokens)
			if err != nil {
				return err
			}

			t, err := build.Transaction(req)
			if err != nil {
				return err
			}

			return writeTransaction(t)
		},
	}
}
