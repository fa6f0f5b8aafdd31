package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/txn"
)

// readStdin slurps standard input in full; every subcommand that consumes a
// transaction reads exactly once, per §5's "standard input exclusive to the
// process" resource rule.
func readStdin() ([]byte, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, clierr.Wrap(clierr.KindDecode, err, "reading stdin")
	}
	return data, nil
}

// decodeStdinTransaction reads and decodes a transaction from stdin.
func decodeStdinTransaction() (*txn.Transaction, error) {
	data, err := readStdin()
	if err != nil {
		return nil, err
	}
	return txn.Decode(bytes.NewReader(data))
}

// writeTransaction encodes t and writes it to stdout, the standard output
// contract every mutating subcommand shares (encode, hash, sign).
func writeTransaction(t *txn.Transaction) error {
	out, err := t.Encode()
	if err != nil {
		return err
	}
	if _, err := os.Stdout.Write(out); err != nil {
		return clierr.Wrap(clierr.KindDecode, err, "writing transaction to stdout")
	}
	return nil
}
