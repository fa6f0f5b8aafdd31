// Package keyfile loads ed25519 keypair and public-key material from the
// JSON array files solana-keygen produces: a keypair file is a 64-byte array
// (secret || public), a pubkey-only file is a 32-byte array.
package keyfile

import (
	"encoding/json"
	"os"

	"github.com/gagliardetto/solana-go"

	"github.com/bji/solxact/internal/clierr"
)

// LoadKeypair reads a 64-byte JSON array keypair file and returns the
// private key (which also carries the derivable public half).
func LoadKeypair(path string) (solana.PrivateKey, error) {
	bytes, err := readByteArray(path)
	if err != nil {
		return nil, err
	}
	if len(bytes) != 64 {
		return nil, clierr.New(clierr.KindParse, "keypair file %s: expected 64 bytes, got %d", path, len(bytes))
	}
	return solana.PrivateKey(bytes), nil
}

// LoadPubkey reads a 32-byte JSON array public-key file.
func LoadPubkey(path string) (solana.PublicKey, error) {
	bytes, err := readByteArray(path)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if len(bytes) != 32 {
		return solana.PublicKey{}, clierr.New(clierr.KindParse, "pubkey file %s: expected 32 bytes, got %d", path, len(bytes))
	}
	var pk solana.PublicKey
	copy(pk[:], bytes)
	return pk, nil
}

func readByteArray(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, clierr.Wrap(clierr.KindParse, err, "reading key file %s", path)
	}
	var ints []int
	if err := json.Unmarshal(raw, &ints); err != nil {
		return nil, clierr.Wrap(clierr.KindParse, err, "key file %s is not a JSON byte array", path)
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, clierr.New(clierr.KindParse, "key file %s: element %d (%d) out of byte range", path, i, v)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// ParseByteArrayLiteral decodes a JSON array literal string of the kind the
// value-language pubkey grammar reconstructs from bracketed tokens (e.g.
// "[1,2,3,...]"), used for both the 64-byte private-key and 32-byte
// public-key literal forms.
func ParseByteArrayLiteral(literal string) ([]byte, error) {
	var ints []int
	if err := json.Unmarshal([]byte(literal), &ints); err != nil {
		return nil, clierr.Wrap(clierr.KindParse, err, "malformed byte array literal %q", literal)
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return nil, clierr.New(clierr.KindParse, "byte array literal: element %d (%d) out of byte range", i, v)
		}
		out[i] = byte(v)
	}
	return out, nil
}
