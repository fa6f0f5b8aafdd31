package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/rpcclient"
)

// newHashCmd fetches the latest blockhash and installs it on the stdin
// transaction (clearing any now-stale signatures, per set_recent_blockhash).
func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash [URL|alias]",
		Short: "Set the transaction's recent blockhash",
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

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			client := rpcclient.New(url)
			bh, err := client.GetLatestBlockhash(ctx)
			if err != nil {
				return err
			}
			log.Debug("fetched latest blockhash", "blockhash", bh)
			hash, err := solana.HashFromBase58(bh)
			if err != nil {
				return clierr.Wrap(clierr.KindRPC, err, "parsing blockhash %q", bh)
			}

			t.SetRecentBlockhash(hash)
			return writeTransaction(t)
		},
	}
}
