package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/rpcclient"
)

// newSimulateCmd submits the stdin transaction to simulateTransaction and,
// on success, passes the original re-encoded transaction bytes through
// unchanged to stdout — a pure filter, matching do_simulate's literal
// behavior of never altering the transaction it validates.
func newSimulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate [URL|alias]",
		Short: "Simulate a transaction against an RPC node",
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
			txBytes, err := t.Encode()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			client := rpcclient.New(url)
			result, err := client.SimulateTransaction(ctx, txBytes)
			if err != nil {
				return err
			}
			log.Debug("simulation completed")

			simErr, err := rpcclient.Field(result, "value.err")
			if err != nil {
				return err
			}
			if simErr != nil {
				return clierr.New(clierr.KindRPC, "simulation failed: %v", simErr)
			}

			_, err = os.Stdout.Write(txBytes)
			if err != nil {
				return clierr.Wrap(clierr.KindDecode, err, "writing transaction to stdout")
			}
			return nil
		},
	}
}
