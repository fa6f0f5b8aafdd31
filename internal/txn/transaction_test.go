package txn

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestPromotionAddSignatureWritePromotesToReadWrite(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	other := solana.NewWallet().PublicKey()

	tx := New(payer)
	tx.AddSignature(other, false)
	rw, ro, _, _ := tx.Partitions()
	require.True(t, rw[0].Equals(payer))
	require.True(t, ro[0].Equals(other))

	tx.AddSignature(other, true)
	rw, ro, _, _ = tx.Partitions()
	require.Len(t, ro, 0)
	require.Contains(t, rw, other)
}

func TestPromotionAddAddressNeverDemotesSigned(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	tx := New(payer)
	tx.AddAddress(payer, false)
	rw, _, _, _ := tx.Partitions()
	require.Contains(t, rw, payer)
}

func TestPromotionAddAddressNeverDemotesReadWrite(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	a := solana.NewWallet().PublicKey()
	tx := New(payer)
	tx.AddAddress(a, true)
	tx.AddAddress(a, false)
	_, _, urw, uro := tx.Partitions()
	require.Contains(t, urw, a)
	require.NotContains(t, uro, a)
}

func TestFindAddressIndexOrderAndRoundTrip(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	tx := New(payer)
	tx.AddAddress(a, true)
	tx.AddAddress(b, false)

	idx, ok := tx.FindAddressIndex(payer)
	require.True(t, ok)
	require.Equal(t, 0, idx)

	addr, signed, writable, ok := tx.FindAddressAtIndex(idx)
	require.True(t, ok)
	require.True(t, addr.Equals(payer))
	require.True(t, signed)
	require.True(t, writable)
}

func TestNeededSignaturesSortedAndDeduplicated(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	tx := New(payer)
	tx.AddSignature(payer, true)

	needed := tx.NeededSignatures()
	require.Len(t, needed, 1)
	require.True(t, needed[0].Equals(payer))

	tx.Sign(payer, solana.Signature{1})
	require.Empty(t, tx.NeededSignatures())
}

func TestSetRecentBlockhashClearsSignaturesOnlyWhenChanged(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	tx := New(payer)
	tx.Sign(payer, solana.Signature{1})

	var h1 solana.Hash
	h1[0] = 1
	tx.SetRecentBlockhash(h1)
	require.NotEmpty(t, tx.NeededSignatures())

	tx.Sign(payer, solana.Signature{1})
	tx.SetRecentBlockhash(h1)
	require.Empty(t, tx.NeededSignatures())
}

func TestWireRoundTrip(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	prog := solana.SystemProgramID
	dest := solana.NewWallet().PublicKey()

	tx := New(payer)
	var h solana.Hash
	h[0] = 0xAB
	tx.SetRecentBlockhash(h)
	tx.AddInstruction(Instruction{
		ProgramID: prog,
		Accounts: []AccountRef{
			{Address: payer, IsSigner: true, IsWritable: true},
			{Address: dest, IsSigner: false, IsWritable: true},
		},
		Data: []byte{1, 2, 3, 4},
	})
	tx.Sign(payer, solana.Signature{0xFF})

	encoded, err := tx.Encode()
	require.NoError(t, err)

	decoded, err := Decode(bytes.NewReader(encoded))
	require.NoError(t, err)

	rw, ro, urw, uro := decoded.Partitions()
	require.Equal(t, []solana.PublicKey{payer}, rw)
	require.Empty(t, ro)
	require.Equal(t, []solana.PublicKey{dest}, urw)
	require.Equal(t, []solana.PublicKey{prog}, uro)
	require.Equal(t, h, decoded.RecentBlockhash())

	require.Len(t, decoded.Instructions(), 1)
	di := decoded.Instructions()[0]
	require.True(t, di.ProgramID.Equals(prog))
	require.Equal(t, []byte{1, 2, 3, 4}, di.Data)
	require.Len(t, di.Accounts, 2)
	require.True(t, di.Accounts[0].IsSigner)
	require.True(t, di.Accounts[0].IsWritable)
	require.False(t, di.Accounts[1].IsSigner)
	require.True(t, di.Accounts[1].IsWritable)

	reencoded, err := decoded.Encode()
	require.NoError(t, err)
	require.Equal(t, encoded, reencoded)
}

func TestDecodeAllowsShortSignaturePrefix(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	other := solana.NewWallet().PublicKey()

	var raw []byte
	raw = append(raw, 1) // compact-u16 signature count = 1 (short: only the fee payer's slot present)
	var sig [64]byte
	sig[0] = 0xAA
	raw = append(raw, sig[:]...)
	raw = append(raw, 2, 0, 0) // header: 2 required signatures, 0 readonly-signed, 0 readonly-unsigned
	raw = append(raw, 2)       // compact-u16 address count = 2
	raw = append(raw, payer[:]...)
	raw = append(raw, other[:]...)
	raw = append(raw, make([]byte, 32)...) // blockhash
	raw = append(raw, 0)                   // compact-u16 instruction count = 0

	decoded, err := Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	sigs := decoded.Signatures()
	require.Len(t, sigs, 2)
	require.Equal(t, sig, [64]byte(sigs[0]))
	require.Equal(t, solana.Signature{}, sigs[1])
}

func TestDecodeRejectsTooManySignatures(t *testing.T) {
	var raw []byte
	raw = append(raw, 2)
	raw = append(raw, make([]byte, 128)...)
	raw = append(raw, 1, 0, 0)
	raw = append(raw, 1)
	raw = append(raw, make([]byte, 32)...)
	raw = append(raw, make([]byte, 32)...)
	raw = append(raw, 0)

	_, err := Decode(bytes.NewReader(raw))
	require.Error(t, err)
}

func TestMessageBytesRejectsOversizedInstructionData(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	tx := New(payer)
	tx.AddInstruction(Instruction{
		ProgramID: solana.SystemProgramID,
		Data:      make([]byte, maxInstructionData+1),
	})
	_, err := tx.MessageBytes()
	require.Error(t, err)
}
