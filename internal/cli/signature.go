package cli

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/bji/solxact/internal/clierr"
)

// newSignatureCmd prints the fee payer's signature (the signed addresses'
// first slot), erroring if the transaction is unsigned.
func newSignatureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signature",
		Short: "Print the fee payer's signature",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := decodeStdinTransaction()
			if err != nil {
				return err
			}

			sigs := t.Signatures()
			if len(sigs) == 0 || sigs[0] == (solana.Signature{}) {
				return clierr.New(clierr.KindSigning, "transaction is not signed and thus has no signature")
			}

			fmt.Println(sigs[0].String())
			return nil
		},
	}
}
