package build

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/bji/solxact/internal/value"
)

func TestTransactionSOLTransfer(t *testing.T) {
	feePayer := solana.NewWallet().PublicKey()
	recipient := solana.NewWallet().PublicKey()
	systemProgram := solana.SystemProgramID

	req := &value.EncodeRequest{
		DialectName: "rust_bincode_varint",
		FeePayer:    feePayer,
		Instructions: []value.Instruction{
			{
				ProgramID: systemProgram,
				Accounts: []value.AccountRef{
					{Address: value.Value{Kind: value.KindPubkey, Bytes32: feePayer}, IsSigner: true, IsWritable: true},
					{Address: value.Value{Kind: value.KindPubkey, Bytes32: recipient}, IsSigner: false, IsWritable: true},
				},
				Data: []value.Value{
					{Kind: value.KindU32, U32s: []uint32{2}},
					{Kind: value.KindU64, U64s: []uint64{1000000}},
				},
			},
		},
	}

	tx, err := Transaction(req)
	require.NoError(t, err)

	insts := tx.Instructions()
	require.Len(t, insts, 1)
	require.True(t, insts[0].ProgramID.Equals(systemProgram))
	require.Len(t, insts[0].Accounts, 2)
	require.True(t, insts[0].Accounts[0].Address.Equals(feePayer))
	require.True(t, insts[0].Accounts[1].Address.Equals(recipient))

	// varint-bincode encodes the small u32 instruction tag (2) in a single
	// byte, followed by the u64 lamports amount (1000000, between u16::MAX
	// and u32::MAX) as a marker byte (252) plus 4-byte LE, concatenated
	// with no length prefix around the whole data blob: 1 + 5 = 6 bytes.
	require.Equal(t, byte(2), insts[0].Data[0])
	require.Len(t, insts[0].Data, 6)

	needed := tx.NeededSignatures()
	require.Len(t, needed, 1)
	require.True(t, needed[0].Equals(feePayer))
}

func TestTransactionResolvesPDAAddress(t *testing.T) {
	feePayer := solana.NewWallet().PublicKey()
	programID := solana.NewWallet().PublicKey()

	req := &value.EncodeRequest{
		DialectName: "rust_bincode_varint",
		FeePayer:    feePayer,
		Instructions: []value.Instruction{
			{
				ProgramID: programID,
				Accounts: []value.AccountRef{
					{Address: value.Value{Kind: value.KindPubkey, Bytes32: feePayer}, IsSigner: true, IsWritable: true},
					{
						Address: value.Value{
							Kind:         value.KindPda,
							PdaProgramID: programID,
							PdaSeeds: []value.Value{
								{Kind: value.KindString, Str: "vault"},
							},
						},
						IsSigner:   false,
						IsWritable: true,
					},
				},
			},
		},
	}

	tx, err := Transaction(req)
	require.NoError(t, err)

	insts := tx.Instructions()
	require.Len(t, insts, 1)
	require.Len(t, insts[0].Accounts, 2)
	// the resolved PDA must not equal the zero key and must differ from the
	// program id and fee payer
	pda := insts[0].Accounts[1].Address
	require.NotEqual(t, solana.PublicKey{}, pda)
	require.False(t, pda.Equals(programID))
	require.False(t, pda.Equals(feePayer))
}

func TestTransactionRejectsUnknownDialect(t *testing.T) {
	feePayer := solana.NewWallet().PublicKey()
	req := &value.EncodeRequest{
		DialectName: "not_a_real_dialect",
		FeePayer:    feePayer,
		Instructions: []value.Instruction{
			{ProgramID: solana.SystemProgramID},
		},
	}

	_, err := Transaction(req)
	require.Error(t, err)
}
