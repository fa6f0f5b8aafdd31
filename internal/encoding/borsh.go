package encoding

import (
	"math"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/pda"
	"github.com/bji/solxact/internal/value"
)

// encodeBorsh implements the Borsh dialect: all scalars are fixed
// little-endian, String/Vector carry a u32 length prefix, and the enum
// discriminant is a single byte.
func encodeBorsh(v value.Value) ([]byte, error) {
	return encodeBorshValue(v)
}

func encodeBorshValue(v value.Value) ([]byte, error) {
	var out []byte
	switch v.Kind {
	case value.KindBool:
		for _, b := range v.Bools {
			if b {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	case value.KindU8:
		out = append(out, v.U8s...)
	case value.KindU16:
		for _, n := range v.U16s {
			out = append(out, le16(n)...)
		}
	case value.KindU32:
		for _, n := range v.U32s {
			out = append(out, le32(n)...)
		}
	case value.KindU64:
		for _, n := range v.U64s {
			out = append(out, le64(n)...)
		}
	case value.KindI8:
		for _, n := range v.I8s {
			out = append(out, byte(n))
		}
	case value.KindI16:
		for _, n := range v.I16s {
			out = append(out, le16(uint16(n))...)
		}
	case value.KindI32:
		for _, n := range v.I32s {
			out = append(out, le32(uint32(n))...)
		}
	case value.KindI64:
		for _, n := range v.I64s {
			out = append(out, le64(uint64(n))...)
		}
	case value.KindF32:
		for _, f := range v.F32s {
			out = append(out, le32(math.Float32bits(f))...)
		}
	case value.KindF64:
		for _, f := range v.F64s {
			out = append(out, le64(math.Float64bits(f))...)
		}
	case value.KindString:
		if len(v.Str) > math.MaxUint32 {
			return nil, clierr.New(clierr.KindDialectIllegal, "borsh string overflows u32 length")
		}
		out = append(out, le32(uint32(len(v.Str)))...)
		out = append(out, []byte(v.Str)...)
	case value.KindCString:
		if len(v.CStringText) > int(v.CStringMaxLen) {
			return nil, clierr.New(clierr.KindDialectIllegal, "c_string value %q (%d bytes) exceeds max_length %d", v.CStringText, len(v.CStringText), v.CStringMaxLen)
		}
		out = append(out, []byte(v.CStringText)...)
		out = append(out, make([]byte, int(v.CStringMaxLen)-len(v.CStringText))...)
	case value.KindPubkey, value.KindSha256:
		out = append(out, v.Bytes32[:]...)
	case value.KindPda, value.KindPdaNoBump:
		addr, err := resolvePdaAddressBorsh(v)
		if err != nil {
			return nil, err
		}
		out = append(out, addr[:]...)
	case value.KindBump:
		bump, err := resolveBumpBorsh(v)
		if err != nil {
			return nil, err
		}
		out = append(out, bump)
	case value.KindVector:
		children := v.Normalize()
		if len(children) > math.MaxUint32 {
			return nil, clierr.New(clierr.KindDialectIllegal, "borsh vector overflows u32 length")
		}
		out = append(out, le32(uint32(len(children)))...)
		for _, c := range children {
			b, err := encodeBorshValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
	case value.KindStruct:
		for _, c := range v.Children {
			b, err := encodeBorshValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
	case value.KindEnum:
		if v.EnumIndex > 255 {
			return nil, clierr.New(clierr.KindDialectIllegal, "enum index %d overflows u8 for borsh encoding", v.EnumIndex)
		}
		out = append(out, byte(v.EnumIndex))
		for _, c := range v.Children {
			b, err := encodeBorshValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
	default:
		return nil, clierr.New(clierr.KindDialectIllegal, "unsupported value kind %s", v.Kind)
	}
	return out, nil
}

func resolvePdaAddressBorsh(v value.Value) ([32]byte, error) {
	seed, err := EncodeSeed(DialectBorsh, v.PdaSeeds)
	if err != nil {
		return [32]byte{}, err
	}
	if v.Kind == value.KindPdaNoBump {
		addr, ok, err := pda.TryFind(v.PdaProgramID, seed, nil)
		if err != nil {
			return [32]byte{}, err
		}
		if !ok {
			return [32]byte{}, clierr.New(clierr.KindCrypto, "no PDA exists for these seeds without a bump seed")
		}
		return addr, nil
	}
	addr, _, err := pda.Find(v.PdaProgramID, seed)
	return addr, err
}

func resolveBumpBorsh(v value.Value) (byte, error) {
	seed, err := EncodeSeed(DialectBorsh, v.PdaSeeds)
	if err != nil {
		return 0, err
	}
	_, bump, err := pda.Find(v.PdaProgramID, seed)
	return bump, err
}
