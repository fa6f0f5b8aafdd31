// Package build assembles a parsed value.EncodeRequest into a concrete
// txn.Transaction: resolving dialect-dependent PDA account addresses,
// encoding each instruction's data values, and applying the promotion
// rules via txn.Transaction's own address-table management.
//
// Grounded in original_source/src/main.rs's do_encode, which walks the same
// parsed instruction list, resolving pda/bump/pda_nobump account sources
// before handing the account list and encoded data to the transaction
// builder.
package build

import (
	"github.com/bji/solxact/internal/clierr"
	"github.com/bji/solxact/internal/encoding"
	"github.com/bji/solxact/internal/txn"
	"github.com/bji/solxact/internal/value"
)

// Transaction resolves req under the dialect named by req.DialectName into
// a *txn.Transaction ready for
// signing, blockhash application, and wire encoding.
func Transaction(req *value.EncodeRequest) (*txn.Transaction, error) {
	dialect, err := encoding.ParseDialectName(req.DialectName)
	if err != nil {
		return nil, err
	}

	t := txn.New(req.FeePayer)

	for _, inst := range req.Instructions {
		accounts := make([]txn.AccountRef, len(inst.Accounts))
		for i, a := range inst.Accounts {
			addr, err := encoding.ResolveAddress(dialect, a.Address)
			if err != nil {
				return nil, clierr.Wrap(clierr.KindValueDomain, err, "resolving account %d of program %s", i, inst.ProgramID)
			}
			accounts[i] = txn.AccountRef{Address: addr, IsSigner: a.IsSigner, IsWritable: a.IsWritable}
		}

		data, err := encoding.Encode(dialect, value.Value{Kind: value.KindStruct, Children: inst.Data})
		if err != nil {
			return nil, clierr.Wrap(clierr.KindValueDomain, err, "encoding instruction data for program %s", inst.ProgramID)
		}

		t.AddInstruction(txn.Instruction{
			ProgramID: inst.ProgramID,
			Accounts:  accounts,
			Data:      data,
		})
	}

	return t, nil
}
