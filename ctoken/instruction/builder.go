package instruction

import "github.com/kysee/ctoken/ctoken/types"

// AccountMeta references an account of an instruction. The handler reads
// accounts by position, so the order produced by the builders is part of the
// protocol.
type AccountMeta struct {
	Pubkey     types.Pubkey
	IsSigner   bool
	IsWritable bool
}

func NewAccountMeta(pubkey types.Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{Pubkey: pubkey, IsSigner: isSigner, IsWritable: true}
}

func NewReadonlyAccountMeta(pubkey types.Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{Pubkey: pubkey, IsSigner: isSigner, IsWritable: false}
}

// Descriptor is an instruction as handed to the ledger environment.
type Descriptor struct {
	ProgramID types.Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// NewInitializeMint creates an InitializeMint instruction.
func NewInitializeMint(programID, mint, mintAuthority types.Pubkey) *Descriptor {
	return &Descriptor{
		ProgramID: programID,
		Accounts: []AccountMeta{
			NewAccountMeta(mint, false),
			NewReadonlyAccountMeta(types.RentSysvarID, false),
		},
		Data: InitializeMint{MintAuthority: mintAuthority}.Pack(),
	}
}

// NewMint creates a Mint instruction.
func NewMint(programID, mint, account, mintAuthority types.Pubkey, data *types.MintData) *Descriptor {
	return &Descriptor{
		ProgramID: programID,
		Accounts: []AccountMeta{
			NewAccountMeta(mint, false),
			NewAccountMeta(account, false),
			NewReadonlyAccountMeta(mintAuthority, true),
		},
		Data: Mint{Data: *data}.Pack(),
	}
}

// NewTransfer creates a Transfer instruction. It requires no signer.
func NewTransfer(programID, source, destination types.Pubkey, data *types.TransferData) *Descriptor {
	return &Descriptor{
		ProgramID: programID,
		Accounts: []AccountMeta{
			NewAccountMeta(source, false),
			NewAccountMeta(destination, false),
		},
		Data: Transfer{Data: *data}.Pack(),
	}
}

// NewCloseAccount creates a CloseAccount instruction.
func NewCloseAccount(programID, source, destination types.Pubkey) *Descriptor {
	return &Descriptor{
		ProgramID: programID,
		Accounts: []AccountMeta{
			NewAccountMeta(source, false),
			NewAccountMeta(destination, false),
		},
		Data: CloseAccount{}.Pack(),
	}
}
