// Package jsonprint renders a decoded transaction into the JSON schema
// used by the `decode` subcommand's human-facing output (§4.7).
package jsonprint

import (
	"github.com/gagliardetto/solana-go"

	"github.com/bji/solxact/internal/txn"
)

// AddressEntry is one entry of the top-level or per-instruction addresses
// array. HasSignature is a pointer so that an explicit "false" (signed but
// not yet signed) can be distinguished from "absent" (not a signer at all);
// encoding/json's omitempty drops it only when nil.
type AddressEntry struct {
	Address      string `json:"address"`
	FeePayer     bool   `json:"fee_payer,omitempty"`
	IsSigned     bool   `json:"is_signed,omitempty"`
	HasSignature *bool  `json:"has_signature,omitempty"`
	IsReadWrite  bool   `json:"is_read_write"`
}

// PrettyInstruction mirrors one decoded instruction.
type PrettyInstruction struct {
	ProgramID string         `json:"program_id"`
	Addresses []AddressEntry `json:"addresses,omitempty"`
	Data      []int          `json:"data"`
}

// PrettyTransaction is the top-level rendered object.
type PrettyTransaction struct {
	Addresses       []AddressEntry      `json:"addresses"`
	RecentBlockhash string              `json:"recent_blockhash,omitempty"`
	Instructions    []PrettyInstruction `json:"instructions"`
}

var falseVal = false

// Render builds the pretty-printer tree for a decoded transaction.
func Render(t *txn.Transaction) *PrettyTransaction {
	out := &PrettyTransaction{Addresses: allAddressEntries(t)}
	if bh := t.RecentBlockhash(); bh != (solana.Hash{}) {
		out.RecentBlockhash = bh.String()
	}

	for _, inst := range t.Instructions() {
		pi := PrettyInstruction{ProgramID: inst.ProgramID.String(), Data: make([]int, len(inst.Data))}
		for i, b := range inst.Data {
			pi.Data[i] = int(b)
		}
		for _, a := range inst.Accounts {
			pi.Addresses = append(pi.Addresses, addressEntry(t, a.Address, false))
		}
		out.Instructions = append(out.Instructions, pi)
	}
	return out
}

func allAddressEntries(t *txn.Transaction) []AddressEntry {
	rw, ro, urw, uro := t.Partitions()
	var out []AddressEntry
	first := true
	for _, group := range [][]solana.PublicKey{rw, ro, urw, uro} {
		for _, a := range group {
			out = append(out, addressEntry(t, a, first))
			first = false
		}
	}
	return out
}

func addressEntry(t *txn.Transaction, addr solana.PublicKey, isFeePayer bool) AddressEntry {
	idx, _ := t.FindAddressIndex(addr)
	_, signed, writable, _ := t.FindAddressAtIndex(idx)

	e := AddressEntry{Address: addr.String(), IsReadWrite: writable}
	if isFeePayer {
		e.FeePayer = true
	}
	if signed {
		e.IsSigned = true
		if signatureFor(t, addr) == (solana.Signature{}) {
			e.HasSignature = &falseVal
		}
	}
	return e
}

func signatureFor(t *txn.Transaction, addr solana.PublicKey) solana.Signature {
	rw, ro, _, _ := t.Partitions()
	addrs := append(append([]solana.PublicKey{}, rw...), ro...)
	sigs := t.Signatures()
	for i, a := range addrs {
		if a.Equals(addr) {
			return sigs[i]
		}
	}
	return solana.Signature{}
}
