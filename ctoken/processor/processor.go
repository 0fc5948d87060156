// Package processor executes c-token instructions against account records.
//
// Proofs are checked by a Verifier before anything is written: when Process
// returns an error, no AccountInfo.Data has been touched.
package processor

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/kysee/ctoken/ctoken/instruction"
	"github.com/kysee/ctoken/ctoken/state"
	"github.com/kysee/ctoken/ctoken/types"
	"github.com/rs/zerolog"
)

// AccountInfo is an account handed to the program by the ledger, in the order
// of the instruction's account references.
type AccountInfo struct {
	Key        types.Pubkey
	Owner      types.Pubkey
	IsSigner   bool
	IsWritable bool
	Data       []byte
}

// Verifier checks proof payloads and returns the commitments to store.
type Verifier interface {
	VerifyMint(dest types.Commitment, data *types.MintData) (*types.MintEffect, error)
	VerifyTransfer(src, dst types.Commitment, data *types.TransferData) (*types.TransferEffect, error)
}

type Processor struct {
	verifier Verifier
	log      zerolog.Logger
}

func New(verifier Verifier, log zerolog.Logger) *Processor {
	return &Processor{verifier: verifier, log: log}
}

// Process decodes data and executes it on accounts.
func (p *Processor) Process(programID types.Pubkey, accounts []*AccountInfo, data []byte) error {
	ix, err := instruction.Unpack(data)
	if err != nil {
		p.log.Warn().Err(err).Msg("rejected undecodable instruction")
		return err
	}

	switch ix := ix.(type) {
	case instruction.InitializeMint:
		err = p.processInitializeMint(programID, accounts, ix.MintAuthority)
	case instruction.Mint:
		err = p.processMint(programID, accounts, &ix.Data)
	case instruction.Transfer:
		err = p.processTransfer(programID, accounts, &ix.Data)
	case instruction.CloseAccount:
		err = p.processCloseAccount(programID, accounts)
	default:
		err = fmt.Errorf("%w: %T", types.ErrInvalidInstruction, ix)
	}
	if err != nil {
		p.log.Warn().Err(err).Stringer("instruction", ix.Tag()).Msg("instruction failed")
		return err
	}
	p.log.Debug().Stringer("instruction", ix.Tag()).Int("accounts", len(accounts)).Msg("instruction executed")
	return nil
}

func (p *Processor) processInitializeMint(programID types.Pubkey, accounts []*AccountInfo, authority types.Pubkey) error {
	if len(accounts) < 2 {
		return ErrNotEnoughAccountKeys
	}
	mintInfo, rentInfo := accounts[0], accounts[1]

	if err := checkWritableState(programID, mintInfo); err != nil {
		return err
	}
	if rentInfo.Key != types.RentSysvarID {
		return ErrInvalidRentSysvar
	}
	mint, err := state.UnpackMint(mintInfo.Data)
	if err != nil {
		return err
	}
	if mint.IsInitialized() {
		return ErrAlreadyInitialized
	}

	mint.MintAuthority = authority
	mint.Supply = 0
	mint.Initialized = true
	return mint.PackInto(mintInfo.Data)
}

func (p *Processor) processMint(programID types.Pubkey, accounts []*AccountInfo, data *types.MintData) error {
	if len(accounts) < 3 {
		return ErrNotEnoughAccountKeys
	}
	mintInfo, destInfo, authorityInfo := accounts[0], accounts[1], accounts[2]

	if err := checkWritableState(programID, mintInfo); err != nil {
		return err
	}
	if err := checkWritableState(programID, destInfo); err != nil {
		return err
	}
	mint, err := state.UnpackMint(mintInfo.Data)
	if err != nil {
		return err
	}
	if !mint.IsInitialized() {
		return fmt.Errorf("%w: mint %s", ErrUninitializedAccount, mintInfo.Key)
	}
	if !authorityInfo.IsSigner {
		return ErrMissingSignature
	}
	if authorityInfo.Key != mint.MintAuthority {
		return ErrAuthorityMismatch
	}

	dest, err := state.UnpackAccount(destInfo.Data)
	if err != nil {
		return err
	}
	var destComm types.Commitment
	if dest.IsInitialized() {
		if dest.Mint != mintInfo.Key {
			return ErrMintMismatch
		}
		destComm = dest.Comm
	}

	effect, err := p.verifier.VerifyMint(destComm, data)
	if err != nil {
		return err
	}

	supply := new(uint256.Int).Add(uint256.NewInt(mint.Supply), uint256.NewInt(effect.Amount))
	if !supply.IsUint64() {
		return ErrSupplyOverflow
	}
	mint.Supply = supply.Uint64()

	dest.Mint = mintInfo.Key
	dest.Initialized = true
	dest.Comm = effect.Comm

	copy(mintInfo.Data, mint.Pack())
	copy(destInfo.Data, dest.Pack())
	return nil
}

func (p *Processor) processTransfer(programID types.Pubkey, accounts []*AccountInfo, data *types.TransferData) error {
	if len(accounts) < 2 {
		return ErrNotEnoughAccountKeys
	}
	srcInfo, dstInfo := accounts[0], accounts[1]

	if srcInfo.Key == dstInfo.Key {
		return ErrSelfTransfer
	}
	src, dst, err := loadAccountPair(programID, srcInfo, dstInfo)
	if err != nil {
		return err
	}

	effect, err := p.verifier.VerifyTransfer(src.Comm, dst.Comm, data)
	if err != nil {
		return err
	}

	src.Comm = effect.Src
	dst.Comm = effect.Dst
	copy(srcInfo.Data, src.Pack())
	copy(dstInfo.Data, dst.Pack())
	return nil
}

// processCloseAccount empties the source. Moving its value out of the
// confidential ledger is bookkept by the environment.
func (p *Processor) processCloseAccount(programID types.Pubkey, accounts []*AccountInfo) error {
	if len(accounts) < 2 {
		return ErrNotEnoughAccountKeys
	}
	srcInfo, dstInfo := accounts[0], accounts[1]

	if srcInfo.Key == dstInfo.Key {
		return ErrSelfTransfer
	}
	if _, _, err := loadAccountPair(programID, srcInfo, dstInfo); err != nil {
		return err
	}

	copy(srcInfo.Data, make([]byte, state.AccountLen))
	return nil
}

// loadAccountPair loads two writable, initialized accounts of the same mint.
func loadAccountPair(programID types.Pubkey, srcInfo, dstInfo *AccountInfo) (*state.Account, *state.Account, error) {
	if err := checkWritableState(programID, srcInfo); err != nil {
		return nil, nil, err
	}
	if err := checkWritableState(programID, dstInfo); err != nil {
		return nil, nil, err
	}

	src, err := state.UnpackAccount(srcInfo.Data)
	if err != nil {
		return nil, nil, err
	}
	if !src.IsInitialized() {
		return nil, nil, fmt.Errorf("%w: source %s", ErrUninitializedAccount, srcInfo.Key)
	}
	dst, err := state.UnpackAccount(dstInfo.Data)
	if err != nil {
		return nil, nil, err
	}
	if !dst.IsInitialized() {
		return nil, nil, fmt.Errorf("%w: destination %s", ErrUninitializedAccount, dstInfo.Key)
	}
	if src.Mint != dst.Mint {
		return nil, nil, ErrMintMismatch
	}
	return src, dst, nil
}

func checkWritableState(programID types.Pubkey, info *AccountInfo) error {
	if info.Owner != programID {
		return fmt.Errorf("%w: %s", ErrIncorrectProgramID, info.Key)
	}
	if !info.IsWritable {
		return fmt.Errorf("%w: %s", ErrAccountNotWritable, info.Key)
	}
	return nil
}
