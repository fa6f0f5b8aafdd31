package value

import (
	"os"

	"github.com/gagliardetto/solana-go"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/keyfile"
)

// ResolvePubkey applies the pubkey literal resolution order: a Base58
// string, then a keypair/pubkey JSON-array file at that path, then a JSON
// byte-array literal for a private key (64 bytes, public half taken), then
// a JSON byte-array literal for a public key (32 bytes).
func ResolvePubkey(literal string) (solana.PublicKey, error) {
	if pk, err := solana.PublicKeyFromBase58(literal); err == nil {
		return pk, nil
	}

	if info, statErr := os.Stat(literal); statErr == nil && !info.IsDir() {
		if kp, err := keyfile.LoadKeypair(literal); err == nil {
			return kp.PublicKey(), nil
		}
		if pk, err := keyfile.LoadPubkey(literal); err == nil {
			return pk, nil
		}
		return solana.PublicKey{}, clierr.New(clierr.KindParse, "%s: not a recognized 32- or 64-byte key file", literal)
	}

	if bytes, err := keyfile.ParseByteArrayLiteral(literal); err == nil {
		switch len(bytes) {
		case 64:
			return solana.PrivateKey(bytes).PublicKey(), nil
		case 32:
			var pk solana.PublicKey
			copy(pk[:], bytes)
			return pk, nil
		default:
			return solana.PublicKey{}, clierr.New(clierr.KindParse, "pubkey literal %q: byte array must have 32 or 64 elements, got %d", literal, len(bytes))
		}
	}

	return solana.PublicKey{}, clierr.New(clierr.KindParse, "%q is not a Base58 pubkey, key file, or byte array literal", literal)
}
