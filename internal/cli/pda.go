package cli

import (
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/encoding"
	"github.com/bji/solxact/internal/pda"
	"github.com/bji/solxact/internal/value"
)

// newPdaCmd derives a Program Derived Address from a program id and a seed
// value list. Seed bytes are always encoded under the C dialect with
// alignment off, regardless of any encoding dialect used elsewhere — the
// `pda` subcommand's grammar has no `encoding` keyword at all.
func newPdaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pda [no-bump-seed] [bytes] <program_id> [seeds]",
		Short: "Derive a Program Derived Address",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noBumpSeed := false
			if args[0] == "no-bump-seed" {
				noBumpSeed = true
				args = args[1:]
			}
			asBytes := false
			if len(args) > 0 && args[0] == "bytes" {
				asBytes = true
				args = args[1:]
			}
			if len(args) == 0 {
				return clierr.New(clierr.KindParse, "pda: expected a program_id")
			}

			tokens, err := value.Tokenize(args)
			if err != nil {
				return err
			}
			programID, seeds, err := value.ParseProgramIDAndSeeds(tokens)
			if err != nil {
				return err
			}

			seedBytes, err := encoding.EncodeSeed(encoding.DialectC, seeds)
			if err != nil {
				return err
			}

			var addr solana.PublicKey
			var bump byte
			if noBumpSeed {
				a, ok, err := pda.TryFind(programID, seedBytes, nil)
				if err != nil {
					return err
				}
				if !ok {
					return clierr.New(clierr.KindCrypto, "no PDA exists for these seeds without a bump seed")
				}
				addr = a
			} else {
				a, b, err := pda.Find(programID, seedBytes)
				if err != nil {
					return err
				}
				addr = a
				bump = b
			}

			if asBytes {
				out, err := json.Marshal(addr[:])
				if err != nil {
					return clierr.Wrap(clierr.KindDecode, err, "rendering PDA bytes")
				}
				fmt.Print(string(out))
			} else {
				fmt.Print(addr.String())
			}

			if noBumpSeed {
				fmt.Println()
			} else {
				fmt.Printf(".%d\n", bump)
			}
			return nil
		},
	}
}
