package cli

import (
	"github.com/spf13/cobra"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/keyfile"
)

// newSignCmd signs the stdin transaction's message bytes with each keypair
// file named on the command line, installing each signature into every
// signature slot matching that keypair's pubkey.
func newSignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign [keyfile...]",
		Short: "Sign a transaction with one or more keypair files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := decodeStdinTransaction()
			if err != nil {
				return err
			}

			message, err := t.MessageBytes()
			if err != nil {
				return err
			}

			for _, path := range args {
				kp, err := keyfile.LoadKeypair(path)
				if err != nil {
					return err
				}
				sig, err := kp.Sign(message)
				if err != nil {
					return clierr.Wrap(clierr.KindSigning, err, "signing with %s", path)
				}
				t.Sign(kp.PublicKey(), sig)
			}

			return writeTransaction(t)
		},
	}
}
