// Package value implements the declarative value language: a tokenizer, a
// recursive-descent parser, and the tagged-union DataValue tree the parser
// produces. The tree is shared by all four dialect encoders in
// internal/encoding.
package value

import "github.com/gagliardetto/solana-go"

// Kind tags the payload carried by a Value.
type Kind int

const (
	KindBool Kind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindI8
	KindI16
	KindI32
	KindI64
	KindF32
	KindF64
	KindString
	KindCString
	KindPubkey
	KindSha256
	KindPda
	KindBump
	KindPdaNoBump
	KindVector
	KindStruct
	KindEnum
)

func (k Kind) String() string {
	names := map[Kind]string{
		KindBool: "bool", KindU8: "u8", KindU16: "u16", KindU32: "u32", KindU64: "u64",
		KindI8: "i8", KindI16: "i16", KindI32: "i32", KindI64: "i64",
		KindF32: "f32", KindF64: "f64", KindString: "string", KindCString: "cstring",
		KindPubkey: "pubkey", KindSha256: "sha256", KindPda: "pda", KindBump: "bump",
		KindPdaNoBump: "pda_nobump", KindVector: "vector", KindStruct: "struct", KindEnum: "enum",
	}
	if n, ok := names[k]; ok {
		return n
	}
	return "unknown"
}

// IsScalarList reports whether Kind holds an ordered sequence of fixed-width
// scalars (the "N values after one tag word" forms in §3 of the spec).
func (k Kind) IsScalarList() bool {
	switch k {
	case KindBool, KindU8, KindU16, KindU32, KindU64, KindI8, KindI16, KindI32, KindI64, KindF32, KindF64:
		return true
	}
	return false
}

// Value is the tagged-union "DataValue" tree. Only the fields relevant to
// Kind are populated; the rest are zero.
type Value struct {
	Kind Kind

	Bools []bool
	U8s   []uint8
	U16s  []uint16
	U32s  []uint32
	U64s  []uint64
	I8s   []int8
	I16s  []int16
	I32s  []int32
	I64s  []int64
	F32s  []float32
	F64s  []float64

	Str string // KindString

	CStringMaxLen uint16 // KindCString
	CStringText   string

	Bytes32 [32]byte // KindPubkey, KindSha256

	PdaProgramID solana.PublicKey // KindPda, KindBump, KindPdaNoBump
	PdaSeeds     []Value

	Children []Value // KindVector, KindStruct, and Enum's field list

	EnumIndex uint64 // KindEnum
}

// ScalarCount returns the length of the scalar sequence for a scalar-list
// Value; it panics if Kind is not a scalar-list kind, which is a caller bug.
func (v Value) ScalarCount() int {
	switch v.Kind {
	case KindBool:
		return len(v.Bools)
	case KindU8:
		return len(v.U8s)
	case KindU16:
		return len(v.U16s)
	case KindU32:
		return len(v.U32s)
	case KindU64:
		return len(v.U64s)
	case KindI8:
		return len(v.I8s)
	case KindI16:
		return len(v.I16s)
	case KindI32:
		return len(v.I32s)
	case KindI64:
		return len(v.I64s)
	case KindF32:
		return len(v.F32s)
	case KindF64:
		return len(v.F64s)
	default:
		panic("value: ScalarCount on non-scalar-list kind " + v.Kind.String())
	}
}

// Element returns a single-element Value of the same scalar kind, holding
// only the i'th value of the sequence. Used by vector normalization.
func (v Value) Element(i int) Value {
	out := Value{Kind: v.Kind}
	switch v.Kind {
	case KindBool:
		out.Bools = []bool{v.Bools[i]}
	case KindU8:
		out.U8s = []uint8{v.U8s[i]}
	case KindU16:
		out.U16s = []uint16{v.U16s[i]}
	case KindU32:
		out.U32s = []uint32{v.U32s[i]}
	case KindU64:
		out.U64s = []uint64{v.U64s[i]}
	case KindI8:
		out.I8s = []int8{v.I8s[i]}
	case KindI16:
		out.I16s = []int16{v.I16s[i]}
	case KindI32:
		out.I32s = []int32{v.I32s[i]}
	case KindI64:
		out.I64s = []int64{v.I64s[i]}
	case KindF32:
		out.F32s = []float32{v.F32s[i]}
	case KindF64:
		out.F64s = []float64{v.F64s[i]}
	default:
		panic("value: Element on non-scalar-list kind " + v.Kind.String())
	}
	return out
}

// Normalize applies vector normalization (§4.4): a vector holding exactly
// one scalar-list child is expanded into N single-scalar elements, one per
// value in that child's sequence. Structs never normalize, and only the
// direct Vector node is affected (its own children are not recursively
// normalized here; encoders normalize each Vector node as they encounter it).
func (v Value) Normalize() []Value {
	if v.Kind != KindVector {
		panic("value: Normalize called on non-vector kind " + v.Kind.String())
	}
	return NormalizeChildren(v.Children)
}

// NormalizeChildren applies the same "one scalar-list expands to N elements"
// rule to a bare child list, used both by Value.Normalize (for an explicit
// Vector node) and by PDA seed-list assembly, which shares the rule but
// never carries a length prefix (§4.3's seed-encoding override).
func NormalizeChildren(children []Value) []Value {
	if len(children) == 1 && children[0].Kind.IsScalarList() {
		child := children[0]
		n := child.ScalarCount()
		out := make([]Value, n)
		for i := 0; i < n; i++ {
			out[i] = child.Element(i)
		}
		return out
	}
	return children
}

// Some and None construct the desugared Enum forms described in §3.
func Some(inner Value) Value {
	return Value{Kind: KindEnum, EnumIndex: 1, Children: []Value{inner}}
}

func None() Value {
	return Value{Kind: KindEnum, EnumIndex: 0, Children: nil}
}
