package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/value"
)

// newPubkeyCmd resolves a pubkey literal (§4.2's resolution order) and
// prints its 32 raw bytes as Base58 (default), a JSON byte-array literal, or
// raw base64, per the `bytes`/`base64` leading flags.
func newPubkeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey [bytes|base64] <source>",
		Short: "Resolve and render a pubkey literal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := ""
			if args[0] == "bytes" || args[0] == "base64" {
				mode = args[0]
				args = args[1:]
			}
			if len(args) == 0 {
				return clierr.New(clierr.KindParse, "pubkey: expected a source")
			}

			source := strings.Join(args, "")
			pk, err := value.ResolvePubkey(source)
			if err != nil {
				return err
			}

			switch mode {
			case "bytes":
				out, err := json.Marshal(pk[:])
				if err != nil {
					return clierr.Wrap(clierr.KindDecode, err, "rendering pubkey bytes")
				}
				fmt.Println(string(out))
			case "base64":
				fmt.Println(base64.StdEncoding.EncodeToString(pk[:]))
			default:
				fmt.Println(base58.Encode(pk[:]))
			}
			return nil
		},
	}
}
