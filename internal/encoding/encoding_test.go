package encoding

import (
	"testing"

	"github.com/near/borsh-go"
	"github.com/stretchr/testify/require"

	"github.com/bji/solxact/internal/value"
)

func TestBorshOptionLiteral(t *testing.T) {
	some := value.Some(value.Value{Kind: value.KindU32, U32s: []uint32{7}})
	got, err := Encode(DialectBorsh, some)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x07, 0x00, 0x00, 0x00}, got)

	none := value.None()
	got, err = Encode(DialectBorsh, none)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, got)
}

func TestCStructAlignmentPadsToWidestField(t *testing.T) {
	s := value.Value{Kind: value.KindStruct, Children: []value.Value{
		{Kind: value.KindU8, U8s: []uint8{1}},
		{Kind: value.KindU32, U32s: []uint32{2}},
	}}
	got, err := Encode(DialectC, s)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}, got)
}

func TestCStructNoPaddingNeeded(t *testing.T) {
	s := value.Value{Kind: value.KindStruct, Children: []value.Value{
		{Kind: value.KindU8, U8s: []uint8{1}},
		{Kind: value.KindU8, U8s: []uint8{2}},
	}}
	got, err := Encode(DialectC, s)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, got)
}

func TestCRejectsStringAndVector(t *testing.T) {
	_, err := Encode(DialectC, value.Value{Kind: value.KindString, Str: "x"})
	require.Error(t, err)

	_, err = Encode(DialectC, value.Value{Kind: value.KindVector, Children: []value.Value{
		{Kind: value.KindU8, U8s: []uint8{1}},
	}})
	require.Error(t, err)
}

func TestFixintBincodeEnumDiscriminantIsFixedU32(t *testing.T) {
	e := value.Value{Kind: value.KindEnum, EnumIndex: 3, Children: []value.Value{
		{Kind: value.KindU64, U64s: []uint64{10000000}},
	}}
	got, err := Encode(DialectFixintBincode, e)
	require.NoError(t, err)
	require.Equal(t, []byte{0x03, 0x00, 0x00, 0x00, 0x80, 0x96, 0x98, 0x00, 0x00, 0x00, 0x00, 0x00}, got)
}

func TestVarintBincodeSmallUintsAreSingleByte(t *testing.T) {
	v := value.Value{Kind: value.KindU32, U32s: []uint32{7, 250}}
	got, err := Encode(DialectVarintBincode, v)
	require.NoError(t, err)
	require.Equal(t, []byte{7, 250}, got)
}

func TestVarintBincodeLargeUintUsesMarkerAndFixedWidth(t *testing.T) {
	v := value.Value{Kind: value.KindU32, U32s: []uint32{70000}}
	got, err := Encode(DialectVarintBincode, v)
	require.NoError(t, err)
	require.Equal(t, byte(252), got[0])
	require.Len(t, got, 5)
}

func TestVectorNormalizationSingleScalarList(t *testing.T) {
	v := value.Value{Kind: value.KindVector, Children: []value.Value{
		{Kind: value.KindU32, U32s: []uint32{1, 2, 3}},
	}}
	got, err := Encode(DialectFixintBincode, v)
	require.NoError(t, err)
	// u64 length (3) + three fixed u32 elements
	require.Equal(t, []byte{3, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}, got)
}

func TestBorshEnumIndexOverflow(t *testing.T) {
	e := value.Value{Kind: value.KindEnum, EnumIndex: 256}
	_, err := Encode(DialectBorsh, e)
	require.Error(t, err)
}

func TestBincodeEnumIndexOverflow(t *testing.T) {
	e := value.Value{Kind: value.KindEnum, EnumIndex: 1 << 33}
	_, err := Encode(DialectVarintBincode, e)
	require.Error(t, err)
}

func TestCStringOverflowRejected(t *testing.T) {
	_, err := Encode(DialectC, value.Value{Kind: value.KindCString, CStringMaxLen: 2, CStringText: "abc"})
	require.Error(t, err)
}

func TestCStringPadsToMaxLength(t *testing.T) {
	got, err := Encode(DialectC, value.Value{Kind: value.KindCString, CStringMaxLen: 5, CStringText: "ab"})
	require.NoError(t, err)
	require.Equal(t, []byte{'a', 'b', 0, 0, 0}, got)
}

// TestBorshStructMatchesReferenceDecoder cross-checks our hand-rolled Borsh
// struct encoding against near/borsh-go's own reflection-based decoder
// (see SPEC_FULL.md §4.4 for why the production encode path is hand-written
// rather than reflection-driven; this keeps near/borsh-go as the independent
// reference implementation the property is checked against).
func TestBorshStructMatchesReferenceDecoder(t *testing.T) {
	type point struct {
		X uint32
		Y uint64
	}

	s := value.Value{Kind: value.KindStruct, Children: []value.Value{
		{Kind: value.KindU32, U32s: []uint32{42}},
		{Kind: value.KindU64, U64s: []uint64{1000000}},
	}}
	got, err := Encode(DialectBorsh, s)
	require.NoError(t, err)

	var decoded point
	require.NoError(t, borsh.Deserialize(&decoded, got))
	require.Equal(t, point{X: 42, Y: 1000000}, decoded)

	reEncoded, err := borsh.Serialize(decoded)
	require.NoError(t, err)
	require.Equal(t, got, reEncoded)
}

func TestParseDialectName(t *testing.T) {
	cases := map[string]Dialect{
		"rust_bincode_varint":   DialectVarintBincode,
		"rust_bincode_fixedint": DialectFixintBincode,
		"rust_borsh":            DialectBorsh,
		"c":                     DialectC,
	}
	for name, want := range cases {
		got, err := ParseDialectName(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseDialectName("bogus")
	require.Error(t, err)
}
