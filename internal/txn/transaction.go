// Package txn implements the Solana legacy transaction model: the
// four-partition address table with promotion semantics, the compact-u16
// based message/transaction wire codec, and signature management.
//
// Grounded in original_source/src/transaction.rs's Transaction struct and
// in the teacher's smartcontract/sdk/go/transaction.go instruction idiom
// (solana.AccountMeta, solana.GenericInstruction-shaped account lists).
package txn

import (
	"github.com/gagliardetto/solana-go"
)

// Instruction is one instruction within a Transaction: a program id, an
// ordered list of account references, and opaque data.
type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  []AccountRef
	Data      []byte
}

// AccountRef names one account used by an Instruction, with its signer and
// writable flags as declared at instruction-construction time (the
// Transaction's promotion rules reconcile these against all other mentions
// of the same address).
type AccountRef struct {
	Address    solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// Transaction holds the four address partitions (in serialization order),
// the recent blockhash, and the instruction list.
//
// Signatures are keyed by address rather than stored as a positional slot
// vector: a signed address can move within the signed partitions (e.g. a
// signed-read-only mention later promoted to signed-read-write), which
// would otherwise silently misalign a positional slot with the wrong
// address. The wire codec resolves each signed address's slot from this
// map at encode time, defaulting to the all-zero sentinel when absent.
type Transaction struct {
	signedReadWrite   []solana.PublicKey
	signedReadOnly    []solana.PublicKey
	unsignedReadWrite []solana.PublicKey
	unsignedReadOnly  []solana.PublicKey

	signatureByAddress map[string]solana.Signature

	recentBlockhash solana.Hash

	instructions []Instruction
}

const (
	maxSignatures           = 18
	maxAddresses            = 37
	maxInstructionAddresses = 1190
	maxInstructionData      = 1192
)

// New starts a transaction with feePayer already installed as the
// signed-read-write address at index 0.
func New(feePayer solana.PublicKey) *Transaction {
	t := &Transaction{signatureByAddress: map[string]solana.Signature{}}
	t.AddSignature(feePayer, true)
	return t
}

func eq(a, b solana.PublicKey) bool { return a.Equals(b) }

func removeFirst(s []solana.PublicKey, addr solana.PublicKey) ([]solana.PublicKey, bool) {
	for i, a := range s {
		if eq(a, addr) {
			return append(s[:i:i], s[i+1:]...), true
		}
	}
	return s, false
}

func contains(s []solana.PublicKey, addr solana.PublicKey) bool {
	for _, a := range s {
		if eq(a, addr) {
			return true
		}
	}
	return false
}

// AddSignature applies the signed-address promotion rule (§4.5): moves
// addr to signedReadWrite if write is true, or if addr was already in
// signedReadWrite or unsignedReadWrite; otherwise moves it to
// signedReadOnly (only if not already signed at a level at least that
// strong).
func (t *Transaction) AddSignature(addr solana.PublicKey, write bool) {
	wasSignedReadWrite := contains(t.signedReadWrite, addr)
	wasUnsignedReadWrite := contains(t.unsignedReadWrite, addr)

	promoteToReadWrite := write || wasSignedReadWrite || wasUnsignedReadWrite

	t.signedReadWrite, _ = removeFirst(t.signedReadWrite, addr)
	t.signedReadOnly, _ = removeFirst(t.signedReadOnly, addr)
	t.unsignedReadWrite, _ = removeFirst(t.unsignedReadWrite, addr)
	t.unsignedReadOnly, _ = removeFirst(t.unsignedReadOnly, addr)

	if promoteToReadWrite {
		t.signedReadWrite = append(t.signedReadWrite, addr)
	} else {
		t.signedReadOnly = append(t.signedReadOnly, addr)
	}
}

// AddAddress applies the unsigned-address promotion rule (§4.5): never
// demotes a signed address, never demotes a read-write address to
// read-only.
func (t *Transaction) AddAddress(addr solana.PublicKey, write bool) {
	if contains(t.signedReadWrite, addr) {
		return
	}
	if contains(t.signedReadOnly, addr) {
		if write {
			t.signedReadOnly, _ = removeFirst(t.signedReadOnly, addr)
			t.signedReadWrite = append(t.signedReadWrite, addr)
		}
		return
	}
	if contains(t.unsignedReadWrite, addr) {
		return
	}
	if contains(t.unsignedReadOnly, addr) {
		if write {
			t.unsignedReadOnly, _ = removeFirst(t.unsignedReadOnly, addr)
			t.unsignedReadWrite = append(t.unsignedReadWrite, addr)
		}
		return
	}
	if write {
		t.unsignedReadWrite = append(t.unsignedReadWrite, addr)
	} else {
		t.unsignedReadOnly = append(t.unsignedReadOnly, addr)
	}
}

// AddInstruction registers program, accounts, and data, promoting every
// address mentioned (program id as unsigned read-only, accounts per their
// own signer/writable flags).
func (t *Transaction) AddInstruction(inst Instruction) {
	t.AddAddress(inst.ProgramID, false)
	for _, a := range inst.Accounts {
		if a.IsSigner {
			t.AddSignature(a.Address, a.IsWritable)
		} else {
			t.AddAddress(a.Address, a.IsWritable)
		}
	}
	t.instructions = append(t.instructions, inst)
}

// SetRecentBlockhash clears every signature slot when h differs from the
// current blockhash; a no-op when equal.
func (t *Transaction) SetRecentBlockhash(h solana.Hash) {
	if t.recentBlockhash == h {
		return
	}
	t.recentBlockhash = h
	t.signatureByAddress = map[string]solana.Signature{}
}

func (t *Transaction) RecentBlockhash() solana.Hash { return t.recentBlockhash }

// Sign installs sig into every signature slot whose address equals pubkey.
func (t *Transaction) Sign(pubkey solana.PublicKey, sig solana.Signature) {
	for _, a := range t.signedAddressesInOrder() {
		if eq(a, pubkey) {
			t.signatureByAddress[a.String()] = sig
		}
	}
}

// signatureFor returns the installed signature for addr, or the all-zero
// sentinel if none has been installed.
func (t *Transaction) signatureFor(addr solana.PublicKey) solana.Signature {
	return t.signatureByAddress[addr.String()]
}

func (t *Transaction) signedAddressesInOrder() []solana.PublicKey {
	out := make([]solana.PublicKey, 0, len(t.signedReadWrite)+len(t.signedReadOnly))
	out = append(out, t.signedReadWrite...)
	out = append(out, t.signedReadOnly...)
	return out
}

// NeededSignatures returns the signed addresses whose signature slot is
// still empty, sorted by Base58 text and deduplicated.
func (t *Transaction) NeededSignatures() []solana.PublicKey {
	seen := map[string]bool{}
	var out []string
	for _, a := range t.signedAddressesInOrder() {
		if t.signatureFor(a) == (solana.Signature{}) {
			s := a.String()
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sortStrings(out)
	pks := make([]solana.PublicKey, len(out))
	for i, s := range out {
		pks[i] = solana.MustPublicKeyFromBase58(s)
	}
	return pks
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// allAddresses returns the full logical concatenation used for indexing
// and serialization: signedReadWrite, signedReadOnly, unsignedReadWrite,
// unsignedReadOnly.
func (t *Transaction) allAddresses() []solana.PublicKey {
	out := make([]solana.PublicKey, 0, len(t.signedReadWrite)+len(t.signedReadOnly)+len(t.unsignedReadWrite)+len(t.unsignedReadOnly))
	out = append(out, t.signedReadWrite...)
	out = append(out, t.signedReadOnly...)
	out = append(out, t.unsignedReadWrite...)
	out = append(out, t.unsignedReadOnly...)
	return out
}

// FindAddressIndex returns the 0-based position of addr in the logical
// concatenation, by raw-byte equality, ignoring permission flags.
func (t *Transaction) FindAddressIndex(addr solana.PublicKey) (int, bool) {
	for i, a := range t.allAddresses() {
		if eq(a, addr) {
			return i, true
		}
	}
	return 0, false
}

// FindAddressAtIndex is the inverse of FindAddressIndex; it also reports
// the partition's (signed, writable) flags.
func (t *Transaction) FindAddressAtIndex(i int) (addr solana.PublicKey, signed, writable bool, ok bool) {
	all := t.allAddresses()
	if i < 0 || i >= len(all) {
		return solana.PublicKey{}, false, false, false
	}
	switch {
	case i < len(t.signedReadWrite):
		return all[i], true, true, true
	case i < len(t.signedReadWrite)+len(t.signedReadOnly):
		return all[i], true, false, true
	case i < len(t.signedReadWrite)+len(t.signedReadOnly)+len(t.unsignedReadWrite):
		return all[i], false, true, true
	default:
		return all[i], false, false, true
	}
}

// Partitions exposes the four address partitions, in serialization order,
// for the JSON pretty-printer.
func (t *Transaction) Partitions() (signedReadWrite, signedReadOnly, unsignedReadWrite, unsignedReadOnly []solana.PublicKey) {
	return t.signedReadWrite, t.signedReadOnly, t.unsignedReadWrite, t.unsignedReadOnly
}

// Signatures returns one signature slot per signedAddressesInOrder entry,
// the all-zero sentinel where no signature has been installed.
func (t *Transaction) Signatures() []solana.Signature {
	addrs := t.signedAddressesInOrder()
	out := make([]solana.Signature, len(addrs))
	for i, a := range addrs {
		out[i] = t.signatureFor(a)
	}
	return out
}

// Instructions returns the instruction list in program-registration order.
func (t *Transaction) Instructions() []Instruction { return t.instructions }
