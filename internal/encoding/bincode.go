package encoding

import (
	"math"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/pda"
	"github.com/bji/solxact/internal/value"
)

// encodeBincode is the shared varint/fixint-bincode encoder entry point;
// varint selects the variable-length integer convention used for scalar
// list elements and length prefixes (§4.4 varint-bincode vs fixint-bincode).
func encodeBincode(v value.Value, varint bool) ([]byte, error) {
	return encodeBincodeValue(v, varint)
}

func encodeBincodeValue(v value.Value, varint bool) ([]byte, error) {
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
			out = append(out, bincodeUint(uint64(n), varint, 16)...)
		}
	case value.KindU32:
		for _, n := range v.U32s {
			out = append(out, bincodeUint(uint64(n), varint, 32)...)
		}
	case value.KindU64:
		for _, n := range v.U64s {
			out = append(out, bincodeUint(n, varint, 64)...)
		}
	case value.KindI8:
		for _, n := range v.I8s {
			out = append(out, byte(n))
		}
	case value.KindI16:
		for _, n := range v.I16s {
			out = append(out, bincodeUint(zigzag64(int64(n)), varint, 16)...)
		}
	case value.KindI32:
		for _, n := range v.I32s {
			out = append(out, bincodeUint(zigzag64(int64(n)), varint, 32)...)
		}
	case value.KindI64:
		for _, n := range v.I64s {
			out = append(out, bincodeUint(zigzag64(n), varint, 64)...)
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
		out = append(out, bincodeUint(uint64(len(v.Str)), varint, 64)...)
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
		addr, err := resolvePdaAddress(v)
		if err != nil {
			return nil, err
		}
		out = append(out, addr[:]...)
	case value.KindBump:
		bump, err := resolveBump(v)
		if err != nil {
			return nil, err
		}
		out = append(out, bump)
	case value.KindVector:
		children := v.Normalize()
		out = append(out, bincodeUint(uint64(len(children)), varint, 64)...)
		for _, c := range children {
			b, err := encodeBincodeValue(c, varint)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
	case value.KindStruct:
		for _, c := range v.Children {
			b, err := encodeBincodeValue(c, varint)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
	case value.KindEnum:
		if v.EnumIndex > math.MaxUint32 {
			return nil, clierr.New(clierr.KindDialectIllegal, "enum index %d overflows u32 for bincode encoding", v.EnumIndex)
		}
		out = append(out, le32(uint32(v.EnumIndex))...)
		for _, c := range v.Children {
			b, err := encodeBincodeValue(c, varint)
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

func resolvePdaAddress(v value.Value) ([32]byte, error) {
	seed, err := EncodeSeed(DialectFixintBincode, v.PdaSeeds)
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

func resolveBump(v value.Value) (byte, error) {
	seed, err := EncodeSeed(DialectFixintBincode, v.PdaSeeds)
	if err != nil {
		return 0, err
	}
	_, bump, err := pda.Find(v.PdaProgramID, seed)
	return bump, err
}

// bincodeUint encodes n as either bincode's variable-length integer form
// (single byte for n <= 250, else a marker byte selecting the smallest
// fixed width that holds n) or a fixed little-endian integer at its
// declared width (16/32/64 bits), per the varint flag. The varint scheme
// itself picks its own minimal marker width regardless of the declared
// width, matching bincode's variable-length integer encoding.
func bincodeUint(n uint64, varint bool, width int) []byte {
	if !varint {
		switch width {
		case 16:
			return le16(uint16(n))
		case 32:
			return le32(uint32(n))
		default:
			return le64(n)
		}
	}
	switch {
	case n <= 250:
		return []byte{byte(n)}
	case n <= math.MaxUint16:
		return append([]byte{251}, le16(uint16(n))...)
	case n <= math.MaxUint32:
		return append([]byte{252}, le32(uint32(n))...)
	default:
		return append([]byte{253}, le64(n)...)
	}
}

func zigzag64(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

func le16(n uint16) []byte {
	return []byte{byte(n), byte(n >> 8)}
}

func le32(n uint32) []byte {
	return []byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
}

func le64(n uint64) []byte {
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = byte(n >> (8 * i))
	}
	return out
}
