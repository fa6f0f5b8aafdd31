package jsonprint

import (
	"encoding/json"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/bji/solxact/internal/txn"
)

func TestRenderUnsignedTransferShowsMissingSignature(t *testing.T) {
	feePayer := solana.NewWallet().PublicKey()
	recipient := solana.NewWallet().PublicKey()

	tr := txn.New(feePayer)
	tr.AddInstruction(txn.Instruction{
		ProgramID: solana.SystemProgramID,
		Accounts: []txn.AccountRef{
			{Address: feePayer, IsSigner: true, IsWritable: true},
			{Address: recipient, IsSigner: false, IsWritable: true},
		},
		Data: []byte{2, 0, 0, 0, 0, 0, 0, 0, 0},
	})

	out := Render(tr)

	// fee payer, recipient, and the system program id (unsigned read-only)
	require.Len(t, out.Addresses, 3)

	feePayerEntry := out.Addresses[0]
	require.Equal(t, feePayer.String(), feePayerEntry.Address)
	require.True(t, feePayerEntry.FeePayer)
	require.True(t, feePayerEntry.IsSigned)
	require.True(t, feePayerEntry.IsReadWrite)
	require.NotNil(t, feePayerEntry.HasSignature)
	require.False(t, *feePayerEntry.HasSignature)

	recipientEntry := out.Addresses[1]
	require.Equal(t, recipient.String(), recipientEntry.Address)
	require.False(t, recipientEntry.FeePayer)
	require.False(t, recipientEntry.IsSigned)
	require.True(t, recipientEntry.IsReadWrite)
	require.Nil(t, recipientEntry.HasSignature)

	require.Empty(t, out.RecentBlockhash)

	require.Len(t, out.Instructions, 1)
	inst := out.Instructions[0]
	require.Equal(t, solana.SystemProgramID.String(), inst.ProgramID)
	require.Len(t, inst.Addresses, 2)
	require.Equal(t, []int{2, 0, 0, 0, 0, 0, 0, 0, 0}, inst.Data)
}

func TestRenderSignedTransactionOmitsHasSignature(t *testing.T) {
	feePayer := solana.NewWallet().PublicKey()

	tr := txn.New(feePayer)
	tr.AddInstruction(txn.Instruction{
		ProgramID: solana.SystemProgramID,
		Accounts: []txn.AccountRef{
			{Address: feePayer, IsSigner: true, IsWritable: true},
		},
	})

	hash := solana.Hash{}
	hash[0] = 9
	tr.SetRecentBlockhash(hash)

	var sig solana.Signature
	sig[0] = 1
	tr.Sign(feePayer, sig)

	out := Render(tr)

	require.Equal(t, hash.String(), out.RecentBlockhash)
	require.Len(t, out.Addresses, 2)
	require.True(t, out.Addresses[0].IsSigned)
	require.Nil(t, out.Addresses[0].HasSignature)
}

// TestRenderReadOnlyAccountAlwaysEmitsIsReadWrite guards against
// "is_read_write" being dropped by omitempty for a read-only (false) account;
// §4.7 lists it as a mandatory field, unlike fee_payer/is_signed/has_signature.
func TestRenderReadOnlyAccountAlwaysEmitsIsReadWrite(t *testing.T) {
	feePayer := solana.NewWallet().PublicKey()
	readOnlyAccount := solana.NewWallet().PublicKey()

	tr := txn.New(feePayer)
	tr.AddInstruction(txn.Instruction{
		ProgramID: solana.SystemProgramID,
		Accounts: []txn.AccountRef{
			{Address: feePayer, IsSigner: true, IsWritable: true},
			{Address: readOnlyAccount, IsSigner: false, IsWritable: false},
		},
	})

	out := Render(tr)

	// the system program id is added first, so the unsigned read-only
	// partition holds it ahead of readOnlyAccount
	require.Len(t, out.Addresses, 3)
	readOnlyEntry := out.Addresses[2]
	require.Equal(t, readOnlyAccount.String(), readOnlyEntry.Address)
	require.False(t, readOnlyEntry.IsReadWrite)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"is_read_write":false`)
}
