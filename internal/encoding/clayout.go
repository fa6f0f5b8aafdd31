package encoding

import (
	"math"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/pda"
	"github.com/bji/solxact/internal/value"
)

// encodeC implements the C-struct-layout dialect: scalars at their natural
// width and alignment, structs padded to the alignment of their widest
// field (both before and after), String/Vector rejected outright.
func encodeC(v value.Value) ([]byte, error) {
	return encodeCValue(v, true)
}

// encodeCValue encodes v with align controlling whether natural-alignment
// padding is applied; align is false for PDA seed assembly (§4.3).
func encodeCValue(v value.Value, align bool) ([]byte, error) {
	out, _, err := encodeCAt(v, 0, align)
	return out, err
}

func encodeCAt(v value.Value, offset int, align bool) ([]byte, int, error) {
	var out []byte
	pad := func(width int) {
		if !align || width <= 1 {
			return
		}
		n := (width - offset%width) % width
		out = append(out, make([]byte, n)...)
		offset += n
	}
	switch v.Kind {
	case value.KindBool:
		for _, b := range v.Bools {
			if b {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
			offset++
		}
	case value.KindU8:
		out = append(out, v.U8s...)
		offset += len(v.U8s)
	case value.KindI8:
		for _, n := range v.I8s {
			out = append(out, byte(n))
			offset++
		}
	case value.KindU16:
		for _, n := range v.U16s {
			pad(2)
			out = append(out, le16(n)...)
			offset += 2
		}
	case value.KindI16:
		for _, n := range v.I16s {
			pad(2)
			out = append(out, le16(uint16(n))...)
			offset += 2
		}
	case value.KindU32:
		for _, n := range v.U32s {
			pad(4)
			out = append(out, le32(n)...)
			offset += 4
		}
	case value.KindI32:
		for _, n := range v.I32s {
			pad(4)
			out = append(out, le32(uint32(n))...)
			offset += 4
		}
	case value.KindF32:
		for _, f := range v.F32s {
			pad(4)
			out = append(out, le32(math.Float32bits(f))...)
			offset += 4
		}
	case value.KindU64:
		for _, n := range v.U64s {
			pad(8)
			out = append(out, le64(n)...)
			offset += 8
		}
	case value.KindI64:
		for _, n := range v.I64s {
			pad(8)
			out = append(out, le64(uint64(n))...)
			offset += 8
		}
	case value.KindF64:
		for _, f := range v.F64s {
			pad(8)
			out = append(out, le64(math.Float64bits(f))...)
			offset += 8
		}
	case value.KindString:
		return nil, 0, clierr.New(clierr.KindDialectIllegal, "string value cannot be used with c encoding")
	case value.KindVector:
		return nil, 0, clierr.New(clierr.KindDialectIllegal, "vector value cannot be used with c encoding")
	case value.KindCString:
		if len(v.CStringText) > int(v.CStringMaxLen) {
			return nil, 0, clierr.New(clierr.KindDialectIllegal, "c_string value %q (%d bytes) exceeds max_length %d", v.CStringText, len(v.CStringText), v.CStringMaxLen)
		}
		out = append(out, []byte(v.CStringText)...)
		out = append(out, make([]byte, int(v.CStringMaxLen)-len(v.CStringText))...)
		offset += int(v.CStringMaxLen)
	case value.KindPubkey, value.KindSha256:
		out = append(out, v.Bytes32[:]...)
		offset += 32
	case value.KindPda, value.KindPdaNoBump:
		addr, err := resolvePdaAddressC(v)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, addr[:]...)
		offset += 32
	case value.KindBump:
		bump, err := resolveBumpC(v)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, bump)
		offset++
	case value.KindStruct:
		fieldAlign := structAlignment(v.Children)
		pad(fieldAlign)
		for _, c := range v.Children {
			b, newOffset, err := encodeCAt(c, offset, align)
			if err != nil {
				return nil, 0, err
			}
			out = append(out, b...)
			offset = newOffset
		}
		pad(fieldAlign)
	case value.KindEnum:
		if v.EnumIndex > 255 {
			return nil, 0, clierr.New(clierr.KindDialectIllegal, "enum index %d overflows u8 for c encoding", v.EnumIndex)
		}
		out = append(out, byte(v.EnumIndex))
		offset++
		fieldAlign := structAlignment(v.Children)
		pad(fieldAlign)
		for _, c := range v.Children {
			b, newOffset, err := encodeCAt(c, offset, align)
			if err != nil {
				return nil, 0, err
			}
			out = append(out, b...)
			offset = newOffset
		}
		pad(fieldAlign)
	default:
		return nil, 0, clierr.New(clierr.KindDialectIllegal, "unsupported value kind %s", v.Kind)
	}
	return out, offset, nil
}

// structAlignment is the maximum natural alignment among fields, per the C
// dialect's "struct alignment equals the maximum alignment of its fields"
// rule; an empty field list has alignment 1.
func structAlignment(fields []value.Value) int {
	max := 1
	for _, f := range fields {
		if a := fieldAlignment(f); a > max {
			max = a
		}
	}
	return max
}

func fieldAlignment(v value.Value) int {
	switch v.Kind {
	case value.KindU16, value.KindI16:
		return 2
	case value.KindU32, value.KindI32, value.KindF32:
		return 4
	case value.KindU64, value.KindI64, value.KindF64:
		return 8
	case value.KindStruct:
		return structAlignment(v.Children)
	case value.KindEnum:
		return structAlignment(v.Children)
	default:
		return 1
	}
}

func resolvePdaAddressC(v value.Value) ([32]byte, error) {
	seed, err := EncodeSeed(DialectC, v.PdaSeeds)
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

func resolveBumpC(v value.Value) (byte, error) {
	seed, err := EncodeSeed(DialectC, v.PdaSeeds)
	if err != nil {
		return 0, err
	}
	_, bump, err := pda.Find(v.PdaProgramID, seed)
	return bump, err
}
