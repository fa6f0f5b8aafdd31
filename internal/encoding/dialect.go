// Package encoding implements the four value-encoding dialects that turn a
// value.Value tree into bytes for transaction instruction data: two bincode
// variants, Borsh, and a C struct layout. All four share the same tree;
// only the leaf-width and padding rules differ.
package encoding

import (
	"github.com/gagliardetto/solana-go"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/value"
)

// Dialect selects one of the four encoders.
type Dialect int

const (
	DialectVarintBincode Dialect = iota
	DialectFixintBincode
	DialectBorsh
	DialectC
)

func (d Dialect) String() string {
	switch d {
	case DialectVarintBincode:
		return "rust_bincode_varint"
	case DialectFixintBincode:
		return "rust_bincode_fixedint"
	case DialectBorsh:
		return "rust_borsh"
	case DialectC:
		return "c"
	default:
		return "unknown"
	}
}

// ParseDialectName maps the `encoding` subcommand token to a Dialect.
func ParseDialectName(name string) (Dialect, error) {
	switch name {
	case "rust_bincode_varint":
		return DialectVarintBincode, nil
	case "rust_bincode_fixedint":
		return DialectFixintBincode, nil
	case "rust_borsh":
		return DialectBorsh, nil
	case "c":
		return DialectC, nil
	default:
		return 0, clierr.New(clierr.KindDialectIllegal, "unknown encoding dialect %q", name)
	}
}

// Encode renders v as instruction data bytes under dialect d.
func Encode(d Dialect, v value.Value) ([]byte, error) {
	switch d {
	case DialectVarintBincode:
		return encodeBincode(v, true)
	case DialectFixintBincode:
		return encodeBincode(v, false)
	case DialectBorsh:
		return encodeBorsh(v)
	case DialectC:
		return encodeC(v)
	default:
		return nil, clierr.New(clierr.KindDialectIllegal, "unknown encoding dialect %d", d)
	}
}

// ResolveAddress turns an account-reference Value into a concrete pubkey:
// a KindPubkey value passes through unchanged; a KindPda/KindPdaNoBump
// value is derived using dialect d's own seed encoding, since the §4.3
// seed-encoding rules (fixed-width integers, no length prefix, dialect's own
// struct layout for "c") are dialect-specific.
func ResolveAddress(d Dialect, v value.Value) (solana.PublicKey, error) {
	if v.Kind == value.KindPubkey {
		return v.Bytes32, nil
	}
	var addr [32]byte
	var err error
	switch d {
	case DialectVarintBincode, DialectFixintBincode:
		addr, err = resolvePdaAddress(v)
	case DialectBorsh:
		addr, err = resolvePdaAddressBorsh(v)
	case DialectC:
		addr, err = resolvePdaAddressC(v)
	default:
		return solana.PublicKey{}, clierr.New(clierr.KindDialectIllegal, "unknown encoding dialect %d", d)
	}
	return addr, err
}

// EncodeSeed renders a PDA seed list under dialect d, with the §4.3 seed
// override applied: normalization still runs, but no length prefix is
// written for the seed list or for a string seed (its UTF-8 bytes are
// written raw in every dialect), integers are always fixed-width (the
// bincode "varint" flag never applies to seed bytes), and C-mode alignment
// padding is suppressed. Values nested inside a seed (for example a vector
// or a struct's string field) keep the dialect's own encoding.
func EncodeSeed(d Dialect, seeds []value.Value) ([]byte, error) {
	normalized := value.NormalizeChildren(seeds)
	var out []byte
	for _, child := range normalized {
		if child.Kind == value.KindString {
			out = append(out, child.Str...)
			continue
		}
		var b []byte
		var err error
		switch d {
		case DialectVarintBincode, DialectFixintBincode:
			b, err = encodeBincodeValue(child, false)
		case DialectBorsh:
			b, err = encodeBorshValue(child)
		case DialectC:
			b, err = encodeCValue(child, false)
		default:
			return nil, clierr.New(clierr.KindDialectIllegal, "unknown encoding dialect %d", d)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}
