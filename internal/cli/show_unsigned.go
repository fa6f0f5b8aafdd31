package cli

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// newShowUnsignedCmd prints the pubkeys still missing a signature: one bare
// Base58 line per signer by default (script-friendly, matching the original
// do_show_unsigned), or a tablewriter table under --table, an ergonomics
// enrichment layered on top without changing the default output.
func newShowUnsignedCmd() *cobra.Command {
	var table bool

	cmd := &cobra.Command{
		Use:   "show-unsigned",
		Short: "List pubkeys that still need to sign this transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := decodeStdinTransaction()
			if err != nil {
				return err
			}

			needed := t.NeededSignatures()

			if !table {
				for _, pk := range needed {
					fmt.Println(pk.String())
				}
				return nil
			}

			w := tablewriter.NewWriter(os.Stdout)
			w.SetAutoWrapText(false)
			w.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
			w.SetHeader([]string{"Pubkey"})
			for _, pk := range needed {
				w.Append([]string{pk.String()})
			}
			w.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&table, "table", false, "render as a table instead of bare lines")
	return cmd
}
