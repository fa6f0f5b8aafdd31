package value

import (
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/bji/solxact/internal/clierr"
)

// AccountRef is one account entry of an Instruction. Address is either a
// resolved KindPubkey literal, or an unresolved KindPda/KindPdaNoBump
// value whose final address depends on the encoding dialect chosen
// for the surrounding encode request (seed bytes are dialect-dependent).
type AccountRef struct {
	Address    Value
	IsSigner   bool
	IsWritable bool
}

// Instruction is one parsed `program ... account ... <data values>` group.
type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  []AccountRef
	Data      []Value
}

// EncodeRequest is the fully parsed `encode` subcommand grammar: an optional
// dialect name, the fee payer, and one or more instructions.
type EncodeRequest struct {
	DialectName  string
	FeePayer     solana.PublicKey
	Instructions []Instruction
}

// terminators is_data_value_terminator's reserved-word set: any of these
// ends an in-progress scalar list without being consumed by it.
var terminators = map[string]bool{
	"program": true, "bool": true, "u8": true, "u16": true, "u32": true, "u64": true,
	"i8": true, "i16": true, "i32": true, "i64": true, "f32": true, "f64": true,
	"string": true, "c_string": true, "pubkey": true, "sha256": true,
	"pda": true, "bump": true, "pda_nobump": true, "vector": true, "struct": true,
	"enum": true, "some": true, "none": true, "]": true, "//": true,
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() (Token, bool) {
	if p.atEnd() {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) expectWord(word string) error {
	t, ok := p.next()
	if !ok || t.Text != word {
		return clierr.New(clierr.KindParse, "expected %q", word)
	}
	return nil
}

// ParseEncodeRequest implements the `encode` subcommand grammar: an
// optional `encoding <name>`, a mandatory `fee_payer <pubkey>`, then a loop
// of `program <pubkey>` followed by zero or more accounts and zero or more
// data values, continuing until the tokens are exhausted.
func ParseEncodeRequest(tokens []Token) (*EncodeRequest, error) {
	p := &parser{tokens: tokens}
	req := &EncodeRequest{DialectName: "rust_bincode_varint"}

	if t, ok := p.peek(); ok && t.Text == "encoding" {
		p.next()
		name, ok := p.next()
		if !ok {
			return nil, clierr.New(clierr.KindParse, "encoding: expected dialect name")
		}
		req.DialectName = name.Text
	}

	if err := p.expectWord("fee_payer"); err != nil {
		return nil, err
	}
	feePayerLit, err := p.readPubkeyLiteral()
	if err != nil {
		return nil, clierr.Wrap(clierr.KindParse, err, "fee_payer")
	}
	req.FeePayer = feePayerLit

	for {
		t, ok := p.peek()
		if !ok {
			break
		}
		if t.Text != "program" {
			return nil, clierr.New(clierr.KindParse, "expected \"program\", got %q", t.Text)
		}
		p.next()

		programID, err := p.readPubkeyLiteral()
		if err != nil {
			return nil, clierr.Wrap(clierr.KindParse, err, "program")
		}

		accounts, err := p.readAccounts()
		if err != nil {
			return nil, err
		}

		data, err := p.readDataValues()
		if err != nil {
			return nil, err
		}

		req.Instructions = append(req.Instructions, Instruction{
			ProgramID: programID,
			Accounts:  accounts,
			Data:      data,
		})
	}

	if len(req.Instructions) == 0 {
		return nil, clierr.New(clierr.KindParse, "encode: at least one \"program\" group is required")
	}
	return req, nil
}

// ParseProgramIDAndSeeds parses the `<program_id> [seeds]` tail shared by
// the `pda` subcommand grammar: a single pubkey literal followed by one or
// more bare data values treated as the seed list (normalized the same way
// a `vector [ ... ]` child list would be, per EncodeSeed).
func ParseProgramIDAndSeeds(tokens []Token) (solana.PublicKey, []Value, error) {
	p := &parser{tokens: tokens}
	programID, err := p.readPubkeyLiteral()
	if err != nil {
		return solana.PublicKey{}, nil, clierr.Wrap(clierr.KindParse, err, "program_id")
	}
	seeds, err := p.readDataValues()
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	if !p.atEnd() {
		t, _ := p.peek()
		return solana.PublicKey{}, nil, clierr.New(clierr.KindParse, "unexpected token %q", t.Text)
	}
	if len(seeds) == 0 {
		return solana.PublicKey{}, nil, clierr.New(clierr.KindParse, "expected at least one seed value")
	}
	return programID, seeds, nil
}

// readAccounts reads zero or more `account <addr> [s|w|sw|ws]` entries.
func (p *parser) readAccounts() ([]AccountRef, error) {
	var out []AccountRef
	for {
		t, ok := p.peek()
		if !ok || t.Text != "account" {
			return out, nil
		}
		p.next()

		addr, err := p.readAccountAddress()
		if err != nil {
			return nil, clierr.Wrap(clierr.KindParse, err, "account")
		}

		ref := AccountRef{Address: addr}
		if flag, ok := p.peek(); ok && !flag.Quoted {
			switch flag.Text {
			case "s":
				ref.IsSigner = true
				p.next()
			case "w":
				ref.IsWritable = true
				p.next()
			case "sw", "ws":
				ref.IsSigner = true
				ref.IsWritable = true
				p.next()
			}
		}
		out = append(out, ref)
	}
}

// readAccountAddress accepts either a plain pubkey literal or a pda/
// pda_nobump DataValue, per §4 account-source rules.
func (p *parser) readAccountAddress() (Value, error) {
	t, ok := p.peek()
	if !ok {
		return Value{}, clierr.New(clierr.KindParse, "expected account address")
	}
	if t.Text == "pda" || t.Text == "pda_nobump" {
		v, present, err := p.readDataValue()
		if err != nil {
			return Value{}, err
		}
		if !present {
			return Value{}, clierr.New(clierr.KindParse, "expected account address")
		}
		return v, nil
	}
	pk, err := p.readPubkeyLiteral()
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindPubkey, Bytes32: pk}, nil
}

// readDataValues reads zero or more DataValue tokens until "program" is
// seen (not consumed, signaling the end of this instruction's data) or the
// tokens are exhausted.
func (p *parser) readDataValues() ([]Value, error) {
	var out []Value
	for {
		v, present, err := p.readDataValue()
		if err != nil {
			return nil, err
		}
		if !present {
			return out, nil
		}
		out = append(out, v)
	}
}

// readDataValue dispatches on the next token's tag word, returning
// present=false without consuming anything when the stream has ended or the
// next token is "program" (the end-of-data-values sentinel).
func (p *parser) readDataValue() (Value, bool, error) {
	t, ok := p.peek()
	if !ok || t.Text == "program" {
		return Value{}, false, nil
	}
	p.next()

	switch t.Text {
	case "bool":
		strs, err := p.readScalarList()
		if err != nil {
			return Value{}, false, err
		}
		bools := make([]bool, len(strs))
		for i, s := range strs {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return Value{}, false, clierr.Wrap(clierr.KindParse, err, "bool literal %q", s)
			}
			bools[i] = b
		}
		return Value{Kind: KindBool, Bools: bools}, true, nil
	case "u8":
		return p.readUintList(KindU8, 8)
	case "u16":
		return p.readUintList(KindU16, 16)
	case "u32":
		return p.readUintList(KindU32, 32)
	case "u64":
		return p.readUintList(KindU64, 64)
	case "i8":
		return p.readIntList(KindI8, 8)
	case "i16":
		return p.readIntList(KindI16, 16)
	case "i32":
		return p.readIntList(KindI32, 32)
	case "i64":
		return p.readIntList(KindI64, 64)
	case "f32":
		strs, err := p.readScalarList()
		if err != nil {
			return Value{}, false, err
		}
		vals := make([]float32, len(strs))
		for i, s := range strs {
			f, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return Value{}, false, clierr.Wrap(clierr.KindParse, err, "f32 literal %q", s)
			}
			vals[i] = float32(f)
		}
		return Value{Kind: KindF32, F32s: vals}, true, nil
	case "f64":
		strs, err := p.readScalarList()
		if err != nil {
			return Value{}, false, err
		}
		vals := make([]float64, len(strs))
		for i, s := range strs {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Value{}, false, clierr.Wrap(clierr.KindParse, err, "f64 literal %q", s)
			}
			vals[i] = f
		}
		return Value{Kind: KindF64, F64s: vals}, true, nil
	case "string":
		s, ok := p.next()
		if !ok {
			return Value{}, false, clierr.New(clierr.KindParse, "string: expected a value")
		}
		return Value{Kind: KindString, Str: s.Text}, true, nil
	case "c_string":
		maxLen, ok := p.next()
		if !ok {
			return Value{}, false, clierr.New(clierr.KindParse, "c_string: expected max_length")
		}
		n, err := strconv.ParseUint(maxLen.Text, 10, 16)
		if err != nil {
			return Value{}, false, clierr.Wrap(clierr.KindParse, err, "c_string max_length %q", maxLen.Text)
		}
		s, ok := p.next()
		if !ok {
			return Value{}, false, clierr.New(clierr.KindParse, "c_string: expected a value")
		}
		return Value{Kind: KindCString, CStringMaxLen: uint16(n), CStringText: s.Text}, true, nil
	case "pubkey":
		pk, err := p.readPubkeyLiteral()
		if err != nil {
			return Value{}, false, err
		}
		return Value{Kind: KindPubkey, Bytes32: pk}, true, nil
	case "sha256":
		h, ok := p.next()
		if !ok {
			return Value{}, false, clierr.New(clierr.KindParse, "sha256: expected hex literal")
		}
		b, err := decodeHex32(h.Text)
		if err != nil {
			return Value{}, false, err
		}
		return Value{Kind: KindSha256, Bytes32: b}, true, nil
	case "pda", "pda_nobump", "bump":
		programID, err := p.readPubkeyLiteral()
		if err != nil {
			return Value{}, false, err
		}
		seeds, err := p.readBracketedList()
		if err != nil {
			return Value{}, false, err
		}
		kind := KindPda
		if t.Text == "pda_nobump" {
			kind = KindPdaNoBump
		} else if t.Text == "bump" {
			kind = KindBump
		}
		return Value{Kind: kind, PdaProgramID: programID, PdaSeeds: seeds}, true, nil
	case "vector":
		children, err := p.readBracketedList()
		if err != nil {
			return Value{}, false, err
		}
		return Value{Kind: KindVector, Children: children}, true, nil
	case "struct":
		children, err := p.readBracketedList()
		if err != nil {
			return Value{}, false, err
		}
		return Value{Kind: KindStruct, Children: children}, true, nil
	case "enum":
		idxTok, ok := p.next()
		if !ok {
			return Value{}, false, clierr.New(clierr.KindParse, "enum: expected index")
		}
		idx, err := strconv.ParseUint(idxTok.Text, 10, 64)
		if err != nil {
			return Value{}, false, clierr.Wrap(clierr.KindParse, err, "enum index %q", idxTok.Text)
		}
		var children []Value
		if next, ok := p.peek(); ok && next.Text == "[" {
			children, err = p.readBracketedList()
			if err != nil {
				return Value{}, false, err
			}
		}
		return Value{Kind: KindEnum, EnumIndex: idx, Children: children}, true, nil
	case "some":
		inner, present, err := p.readDataValue()
		if err != nil {
			return Value{}, false, err
		}
		if !present {
			return Value{}, false, clierr.New(clierr.KindParse, "some: expected exactly one value")
		}
		return Some(inner), true, nil
	case "none":
		return None(), true, nil
	default:
		return Value{}, false, clierr.New(clierr.KindParse, "unexpected token %q", t.Text)
	}
}

// readScalarList reads raw literal words until a terminator word or the end
// of the stream; at least one literal is required.
func (p *parser) readScalarList() ([]string, error) {
	var out []string
	for {
		t, ok := p.peek()
		if !ok || terminators[t.Text] {
			break
		}
		p.next()
		out = append(out, t.Text)
	}
	if len(out) == 0 {
		return nil, clierr.New(clierr.KindParse, "expected at least one scalar literal")
	}
	return out, nil
}

func (p *parser) readUintList(kind Kind, bits int) (Value, bool, error) {
	strs, err := p.readScalarList()
	if err != nil {
		return Value{}, false, err
	}
	v := Value{Kind: kind}
	for _, s := range strs {
		n, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return Value{}, false, clierr.Wrap(clierr.KindParse, err, "%s literal %q", kind, s)
		}
		switch kind {
		case KindU8:
			v.U8s = append(v.U8s, uint8(n))
		case KindU16:
			v.U16s = append(v.U16s, uint16(n))
		case KindU32:
			v.U32s = append(v.U32s, uint32(n))
		case KindU64:
			v.U64s = append(v.U64s, n)
		}
	}
	return v, true, nil
}

func (p *parser) readIntList(kind Kind, bits int) (Value, bool, error) {
	strs, err := p.readScalarList()
	if err != nil {
		return Value{}, false, err
	}
	v := Value{Kind: kind}
	for _, s := range strs {
		n, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return Value{}, false, clierr.Wrap(clierr.KindParse, err, "%s literal %q", kind, s)
		}
		switch kind {
		case KindI8:
			v.I8s = append(v.I8s, int8(n))
		case KindI16:
			v.I16s = append(v.I16s, int16(n))
		case KindI32:
			v.I32s = append(v.I32s, int32(n))
		case KindI64:
			v.I64s = append(v.I64s, n)
		}
	}
	return v, true, nil
}

// readBracketedList requires a leading "[", one or more DataValues, and a
// closing "]"; an empty list is rejected.
func (p *parser) readBracketedList() ([]Value, error) {
	if err := p.expectWord("["); err != nil {
		return nil, err
	}
	var out []Value
	for {
		if t, ok := p.peek(); ok && t.Text == "]" {
			p.next()
			break
		}
		v, present, err := p.readDataValue()
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, clierr.New(clierr.KindParse, "unterminated bracketed list")
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, clierr.New(clierr.KindParse, "bracketed list must not be empty")
	}
	return out, nil
}

// readPubkeyLiteral reconstructs a bracket-delimited JSON array literal by
// concatenating raw token text with no separators between "[" and "]", then
// resolves it through the pubkey resolution order; otherwise it resolves
// the single next token directly.
func (p *parser) readPubkeyLiteral() (solana.PublicKey, error) {
	t, ok := p.peek()
	if !ok {
		return solana.PublicKey{}, clierr.New(clierr.KindParse, "expected a pubkey")
	}
	if t.Text != "[" {
		p.next()
		return ResolvePubkey(t.Text)
	}

	var b strings.Builder
	for {
		tok, ok := p.next()
		if !ok {
			return solana.PublicKey{}, clierr.New(clierr.KindParse, "unterminated pubkey array literal")
		}
		b.WriteString(tok.Text)
		if tok.Text == "]" {
			break
		}
	}
	return ResolvePubkey(b.String())
}

func decodeHex32(s string) ([32]byte, error) {
	var out [32]byte
	if len(s) != 64 {
		return out, clierr.New(clierr.KindParse, "sha256 literal must be 64 hex characters, got %d", len(s))
	}
	for i := 0; i < 32; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return out, clierr.Wrap(clierr.KindParse, err, "sha256 literal %q", s)
		}
		out[i] = byte(v)
	}
	return out, nil
}
