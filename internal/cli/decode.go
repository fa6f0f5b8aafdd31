package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/jsonprint"
)

// newDecodeCmd renders a stdin transaction as the §4.7 JSON schema on
// stdout.
func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode",
		Short: "Render a transaction as structured JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := decodeStdinTransaction()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(jsonprint.Render(t), "", "  ")
			if err != nil {
				return clierr.Wrap(clierr.KindDecode, err, "rendering transaction JSON")
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
