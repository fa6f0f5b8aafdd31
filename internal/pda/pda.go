// Package pda implements Solana Program Derived Address derivation: SHA-256
// over seed bytes followed by ed25519 curve-point rejection, with an
// automatic descending bump-seed search.
//
// The derivation is hand-written against the SHA-256 + curve-rejection
// algorithm rather than delegated to gagliardetto/solana-go's
// FindProgramAddress, since that delegation is exactly the black box this
// package is specified to implement.
package pda

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"

	"github.com/bji/solxact/internal/clierr"
)

const pdaMarker = "ProgramDerivedAddress"

// MaxBump is the highest bump seed value ever tried; the search proceeds
// downward from here.
const MaxBump = 255

// TryFind computes SHA-256(seed || bump? || programID || "ProgramDerivedAddress")
// and returns the candidate address if, and only if, the resulting 32 bytes
// do NOT decode as a valid compressed Edwards-Y point on curve25519 (i.e. the
// candidate could not also be a valid ed25519 public key). ok is false when
// the candidate lands on the curve and must be rejected.
func TryFind(programID solana.PublicKey, seed []byte, bump *byte) (addr solana.PublicKey, ok bool, err error) {
	h := sha256.New()
	h.Write(seed)
	if bump != nil {
		h.Write([]byte{*bump})
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))
	sum := h.Sum(nil)

	var candidate solana.PublicKey
	copy(candidate[:], sum)

	if isOnCurve(sum) {
		return solana.PublicKey{}, false, nil
	}
	return candidate, true, nil
}

// Find iterates bump from 255 down to 0, returning the first (pda, bump)
// pair for which TryFind succeeds. Exhausting the range without success is
// vanishingly unlikely but must surface as an error rather than a panic.
func Find(programID solana.PublicKey, seed []byte) (solana.PublicKey, byte, error) {
	for b := MaxBump; b >= 0; b-- {
		bump := byte(b)
		addr, ok, err := TryFind(programID, seed, &bump)
		if err != nil {
			return solana.PublicKey{}, 0, err
		}
		if ok {
			return addr, bump, nil
		}
	}
	return solana.PublicKey{}, 0, clierr.New(clierr.KindCrypto, "no off-curve address found for any bump seed in [0, %d]", MaxBump)
}

// isOnCurve reports whether the 32 bytes decode as a valid compressed
// Edwards-Y point on curve25519, using the same decode the Solana runtime
// uses to reject PDA collisions with real ed25519 public keys.
func isOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	var buf [32]byte
	copy(buf[:], b)
	_, err := new(edwards25519.Point).SetBytes(buf[:])
	return err == nil
}
