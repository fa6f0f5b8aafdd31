package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/rpcclient"
)

// newSubmitCmd refuses to send a transaction with unfilled signature slots,
// otherwise sends it and polls getTransaction every second until it
// finalizes, per §5's submit workflow.
func newSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit [URL|alias]",
		Short: "Submit a signed transaction and wait for finalization",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, err := verboseFlag(cmd)
			if err != nil {
				return err
			}
			log := newLogger(verbose)

			url, err := clusterArg(args)
			if err != nil {
				return err
			}
			log.Debug("resolved cluster", "url", url)

			t, err := decodeStdinTransaction()
			if err != nil {
				return err
			}

			if needed := t.NeededSignatures(); len(needed) > 0 {
				missing := make([]string, len(needed))
				for i, pk := range needed {
					missing[i] = pk.String()
				}
				return clierr.New(clierr.KindSigning, "transaction cannot be submitted because it is not signed by: %s", strings.Join(missing, ", "))
			}

			txBytes, err := t.Encode()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			client := rpcclient.New(url)
			sig, err := client.SendTransaction(ctx, txBytes)
			if err != nil {
				return err
			}
			fmt.Println("Transaction signature:", sig)
			log.Debug("polling for confirmation", "signature", sig)

			_, err = client.PollForConfirmation(ctx, sig)
			return err
		},
	}
}
