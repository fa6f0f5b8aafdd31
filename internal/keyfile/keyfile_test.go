package keyfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func writeByteArrayFile(t *testing.T, bytes []byte) string {
	t.Helper()
	ints := make([]int, len(bytes))
	for i, b := range bytes {
		ints[i] = int(b)
	}
	raw, err := json.Marshal(ints)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestLoadKeypairRoundTrip(t *testing.T) {
	wallet := solana.NewWallet()
	path := writeByteArrayFile(t, wallet.PrivateKey)

	got, err := LoadKeypair(path)
	require.NoError(t, err)
	require.Equal(t, wallet.PrivateKey, got)
	require.True(t, got.PublicKey().Equals(wallet.PublicKey()))
}

func TestLoadKeypairRejectsWrongLength(t *testing.T) {
	path := writeByteArrayFile(t, make([]byte, 32))
	_, err := LoadKeypair(path)
	require.Error(t, err)
}

func TestLoadPubkey(t *testing.T) {
	wallet := solana.NewWallet()
	pub := wallet.PublicKey()
	path := writeByteArrayFile(t, pub[:])

	got, err := LoadPubkey(path)
	require.NoError(t, err)
	require.True(t, got.Equals(pub))
}

func TestLoadPubkeyRejectsWrongLength(t *testing.T) {
	path := writeByteArrayFile(t, make([]byte, 64))
	_, err := LoadPubkey(path)
	require.Error(t, err)
}

func TestParseByteArrayLiteral(t *testing.T) {
	got, err := ParseByteArrayLiteral("[1,2,3]")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, got)

	_, err = ParseByteArrayLiteral("[1,2,300]")
	require.Error(t, err)

	_, err = ParseByteArrayLiteral("not json")
	require.Error(t, err)
}
