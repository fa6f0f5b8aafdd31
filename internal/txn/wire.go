package txn

import (
	"io"

	"github.com/gagliardetto/solana-go"

	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/compactu16"
)

// MessageBytes renders the signed portion of the transaction: header,
// address table, recent blockhash, and instructions (§4.5).
func (t *Transaction) MessageBytes() ([]byte, error) {
	if len(t.signedReadWrite)+len(t.signedReadOnly) > 255 {
		return nil, clierr.New(clierr.KindTransactionLimit, "too many signed addresses: %d", len(t.signedReadWrite)+len(t.signedReadOnly))
	}
	if len(t.unsignedReadOnly) > 255 {
		return nil, clierr.New(clierr.KindTransactionLimit, "too many read-only unsigned addresses: %d", len(t.unsignedReadOnly))
	}

	var out []byte
	out = append(out, byte(len(t.signedReadWrite)+len(t.signedReadOnly)))
	out = append(out, byte(len(t.signedReadOnly)))
	out = append(out, byte(len(t.unsignedReadOnly)))

	all := t.allAddresses()
	if len(all) > maxAddresses {
		return nil, clierr.New(clierr.KindTransactionLimit, "too many addresses: %d (max %d)", len(all), maxAddresses)
	}
	var err error
	out, err = compactu16.Encode(out, len(all))
	if err != nil {
		return nil, err
	}
	for _, a := range all {
		out = append(out, a[:]...)
	}

	out = append(out, t.recentBlockhash[:]...)

	out, err = compactu16.Encode(out, len(t.instructions))
	if err != nil {
		return nil, err
	}
	for _, inst := range t.instructions {
		progIdx, ok := t.FindAddressIndex(inst.ProgramID)
		if !ok {
			return nil, clierr.New(clierr.KindTransactionLimit, "program %s not found in address table", inst.ProgramID)
		}
		out = append(out, byte(progIdx))

		if len(inst.Accounts) > maxInstructionAddresses {
			return nil, clierr.New(clierr.KindTransactionLimit, "instruction has %d accounts (max %d)", len(inst.Accounts), maxInstructionAddresses)
		}
		out, err = compactu16.Encode(out, len(inst.Accounts))
		if err != nil {
			return nil, err
		}
		for _, a := range inst.Accounts {
			idx, ok := t.FindAddressIndex(a.Address)
			if !ok {
				return nil, clierr.New(clierr.KindTransactionLimit, "account %s not found in address table", a.Address)
			}
			out = append(out, byte(idx))
		}

		if len(inst.Data) > maxInstructionData {
			return nil, clierr.New(clierr.KindTransactionLimit, "instruction data is %d bytes (max %d)", len(inst.Data), maxInstructionData)
		}
		out, err = compactu16.Encode(out, len(inst.Data))
		if err != nil {
			return nil, err
		}
		out = append(out, inst.Data...)
	}

	return out, nil
}

// Encode renders the full transaction bytes: compact-u16 signature count,
// that many 64-byte signature slots, then the message bytes.
func (t *Transaction) Encode() ([]byte, error) {
	sigs := t.Signatures()
	if len(sigs) > maxSignatures {
		return nil, clierr.New(clierr.KindTransactionLimit, "too many signatures: %d (max %d)", len(sigs), maxSignatures)
	}

	out, err := compactu16.Encode(nil, len(sigs))
	if err != nil {
		return nil, err
	}
	for _, s := range sigs {
		out = append(out, s[:]...)
	}

	msg, err := t.MessageBytes()
	if err != nil {
		return nil, err
	}
	return append(out, msg...), nil
}

// Decode reads transaction bytes in the inverse order, validating every
// declared count against the packet-size limits before allocating. A short
// signature array is permitted (trailing signatures are implicitly
// absent); more signatures than signed addresses is a decode error.
func Decode(r io.Reader) (*Transaction, error) {
	sigCount, err := compactu16.Decode(r)
	if err != nil {
		return nil, clierr.Wrap(clierr.KindDecode, err, "signature count")
	}
	if int(sigCount) > maxSignatures {
		return nil, clierr.New(clierr.KindDecode, "signature count %d exceeds limit %d", sigCount, maxSignatures)
	}
	sigs := make([]solana.Signature, sigCount)
	for i := range sigs {
		if _, err := io.ReadFull(r, sigs[i][:]); err != nil {
			return nil, clierr.Wrap(clierr.KindDecode, err, "signature %d", i)
		}
	}

	header := make([]byte, 3)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, clierr.Wrap(clierr.KindDecode, err, "message header")
	}
	numRequiredSignatures := int(header[0])
	numReadonlySigned := int(header[1])
	numReadonlyUnsigned := int(header[2])
	if numReadonlySigned > numRequiredSignatures {
		return nil, clierr.New(clierr.KindDecode, "readonly-signed count %d exceeds required-signatures count %d", numReadonlySigned, numRequiredSignatures)
	}
	if int(sigCount) > numRequiredSignatures {
		return nil, clierr.New(clierr.KindDecode, "signature count %d exceeds signed address count %d", sigCount, numRequiredSignatures)
	}

	addrCount, err := compactu16.Decode(r)
	if err != nil {
		return nil, clierr.Wrap(clierr.KindDecode, err, "address count")
	}
	if int(addrCount) > maxAddresses {
		return nil, clierr.New(clierr.KindDecode, "address count %d exceeds limit %d", addrCount, maxAddresses)
	}
	if int(addrCount) < numRequiredSignatures+numReadonlyUnsigned {
		return nil, clierr.New(clierr.KindDecode, "address count %d inconsistent with header counts", addrCount)
	}
	addrs := make([]solana.PublicKey, addrCount)
	for i := range addrs {
		if _, err := io.ReadFull(r, addrs[i][:]); err != nil {
			return nil, clierr.Wrap(clierr.KindDecode, err, "address %d", i)
		}
	}

	var blockhash solana.Hash
	if _, err := io.ReadFull(r, blockhash[:]); err != nil {
		return nil, clierr.Wrap(clierr.KindDecode, err, "recent blockhash")
	}

	numSignedReadWrite := numRequiredSignatures - numReadonlySigned
	numUnsignedReadWrite := int(addrCount) - numRequiredSignatures - numReadonlyUnsigned

	t := &Transaction{signatureByAddress: map[string]solana.Signature{}}
	t.signedReadWrite = append(t.signedReadWrite, addrs[:numSignedReadWrite]...)
	t.signedReadOnly = append(t.signedReadOnly, addrs[numSignedReadWrite:numRequiredSignatures]...)
	t.unsignedReadWrite = append(t.unsignedReadWrite, addrs[numRequiredSignatures:numRequiredSignatures+numUnsignedReadWrite]...)
	t.unsignedReadOnly = append(t.unsignedReadOnly, addrs[numRequiredSignatures+numUnsignedReadWrite:]...)
	t.recentBlockhash = blockhash

	for i, sig := range sigs {
		if sig != (solana.Signature{}) {
			t.signatureByAddress[addrs[i].String()] = sig
		}
	}

	instCount, err := compactu16.Decode(r)
	if err != nil {
		return nil, clierr.Wrap(clierr.KindDecode, err, "instruction count")
	}
	for i := 0; i < int(instCount); i++ {
		var progIdxByte [1]byte
		if _, err := io.ReadFull(r, progIdxByte[:]); err != nil {
			return nil, clierr.Wrap(clierr.KindDecode, err, "instruction %d program index", i)
		}
		progIdx := int(progIdxByte[0])
		if progIdx >= len(addrs) {
			return nil, clierr.New(clierr.KindDecode, "instruction %d: program index %d out of range", i, progIdx)
		}

		acctCount, err := compactu16.Decode(r)
		if err != nil {
			return nil, clierr.Wrap(clierr.KindDecode, err, "instruction %d account count", i)
		}
		if int(acctCount) > maxInstructionAddresses {
			return nil, clierr.New(clierr.KindDecode, "instruction %d: account count %d exceeds limit %d", i, acctCount, maxInstructionAddresses)
		}
		accountIndexes := make([]byte, acctCount)
		if _, err := io.ReadFull(r, accountIndexes); err != nil {
			return nil, clierr.Wrap(clierr.KindDecode, err, "instruction %d account indexes", i)
		}

		dataLen, err := compactu16.Decode(r)
		if err != nil {
			return nil, clierr.Wrap(clierr.KindDecode, err, "instruction %d data length", i)
		}
		if int(dataLen) > maxInstructionData {
			return nil, clierr.New(clierr.KindDecode, "instruction %d: data length %d exceeds limit %d", i, dataLen, maxInstructionData)
		}
		data := make([]byte, dataLen)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, clierr.Wrap(clierr.KindDecode, err, "instruction %d data", i)
		}

		accounts := make([]AccountRef, len(accountIndexes))
		for j, idx := range accountIndexes {
			if int(idx) >= len(addrs) {
				return nil, clierr.New(clierr.KindDecode, "instruction %d: account index %d out of range", i, idx)
			}
			addr, signed, writable, _ := t.FindAddressAtIndex(int(idx))
			accounts[j] = AccountRef{Address: addr, IsSigner: signed, IsWritable: writable}
		}

		t.instructions = append(t.instructions, Instruction{
			ProgramID: addrs[progIdx],
			Accounts:  accounts,
			Data:      data,
		})
	}

	return t, nil
}
