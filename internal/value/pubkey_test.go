package value

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestResolvePubkeyBase58(t *testing.T) {
	wallet := solana.NewWallet()
	got, err := ResolvePubkey(wallet.PublicKey().String())
	require.NoError(t, err)
	require.True(t, got.Equals(wallet.PublicKey()))
}

func TestResolvePubkeyKeypairFile(t *testing.T) {
	wallet := solana.NewWallet()
	ints := make([]int, len(wallet.PrivateKey))
	for i, b := range wallet.PrivateKey {
		ints[i] = int(b)
	}
	raw, err := json.Marshal(ints)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	got, err := ResolvePubkey(path)
	require.NoError(t, err)
	require.True(t, got.Equals(wallet.PublicKey()))
}

func TestResolvePubkeyPrivateKeyLiteral(t *testing.T) {
	wallet := solana.NewWallet()
	ints := make([]int, len(wallet.PrivateKey))
	for i, b := range wallet.PrivateKey {
		ints[i] = int(b)
	}
	raw, err := json.Marshal(ints)
	require.NoError(t, err)

	got, err := ResolvePubkey(string(raw))
	require.NoError(t, err)
	require.True(t, got.Equals(wallet.PublicKey()))
}

func TestResolvePubkeyPublicKeyLiteral(t *testing.T) {
	wallet := solana.NewWallet()
	pub := wallet.PublicKey()
	ints := make([]int, len(pub))
	for i, b := range pub {
		ints[i] = int(b)
	}
	raw, err := json.Marshal(ints)
	require.NoError(t, err)

	got, err := ResolvePubkey(string(raw))
	require.NoError(t, err)
	require.True(t, got.Equals(pub))
}

func TestResolvePubkeyRejectsGarbage(t *testing.T) {
	_, err := ResolvePubkey("not-a-pubkey-or-file")
	require.Error(t, err)
}
