// Package cli wires the solxact subcommand tree: encode, decode, hash,
// sign, show-unsigned, signature, simulate, submit, pda, and pubkey. It is
// grounded in the teacher's controlplane/telemetry/internal/data/cli
// package (root command construction, persistent --verbose flag,
// log/slog+lmittmann/tint logger, per-subcommand flag-retrieval idiom).
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// ExitCode mirrors the teacher's own exit-code type; unlike the teacher's
// root.go, the spec's own exit codes are 0 (success) and -1 (error), not 1.
type ExitCode int

const (
	exitCodeSuccess ExitCode = 0
	exitCodeError   ExitCode = -1
)

// Run builds the root command, executes it against os.Args, and returns the
// process exit code. A returned error's text is printed to stderr as a
// blank line, "ERROR: <message>", a blank line, then a hint to run help —
// the literal error-reporting shape of the original CLI.
func Run() ExitCode {
	rootCmd := &cobra.Command{
		Use:           "solxact",
		Short:         "Build, inspect, mutate, sign, and submit Solana transactions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "set debug logging level")

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newHashCmd(),
		newSignCmd(),
		newShowUnsignedCmd(),
		newSignatureCmd(),
		newSimulateCmd(),
		newSubmitCmd(),
		newPdaCmd(),
		newPubkeyCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Try 'solxact help' for help")
		return exitCodeError
	}

	return exitCodeSuccess
}

// newLogger mirrors root.go's newLogger, writing to stderr rather than
// stdout since every subcommand's stdout carries either an encoded
// transaction or a JSON/Base58 artifact that must never be interleaved with
// diagnostic output.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func verboseFlag(cmd *cobra.Command) (bool, error) {
	v, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return false, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	return v, nil
}
