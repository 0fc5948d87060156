// Package ledger is an in-memory host for the c-token program. It keeps the
// account records, checks signatures and runs instructions atomically.
package ledger

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/kysee/ctoken/ctoken/config"
	"github.com/kysee/ctoken/ctoken/instruction"
	"github.com/kysee/ctoken/ctoken/processor"
	"github.com/kysee/ctoken/ctoken/proof"
	"github.com/kysee/ctoken/ctoken/state"
	"github.com/kysee/ctoken/ctoken/types"
	"github.com/rs/zerolog"
)

var (
	ErrUnknownProgram  = errors.New("unknown program")
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrMissingSigner   = errors.New("required signer did not sign")
)

type record struct {
	owner types.Pubkey
	data  []byte
}

type Bank struct {
	mtx       sync.RWMutex
	programID types.Pubkey
	accounts  map[types.Pubkey]*record
	processor *processor.Processor
	log       zerolog.Logger
	closer    io.Closer
}

// NewBank builds a bank from cfg, loading the range proof keys from
// cfg.KeyDir (or creating them there on first start).
func NewBank(cfg *config.Config) (*Bank, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, closer, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	keys, err := proof.SetupOrLoadKeys(cfg.KeyDir)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to load range proof keys: %w", err)
	}
	log.Info().Str("key_dir", cfg.KeyDir).Str("program", cfg.ProgramID).Msg("bank ready")

	b := NewBankWith(cfg.Program(), proof.NewVerifier(keys.VK), log)
	b.closer = closer
	return b, nil
}

func NewBankWith(programID types.Pubkey, verifier processor.Verifier, log zerolog.Logger) *Bank {
	return &Bank{
		programID: programID,
		accounts:  make(map[types.Pubkey]*record),
		processor: processor.New(verifier, log),
		log:       log,
	}
}

func (b *Bank) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

func (b *Bank) ProgramID() types.Pubkey {
	return b.programID
}

// CreateAccount allocates a zeroed record of size bytes owned by the program.
func (b *Bank) CreateAccount(key types.Pubkey, size int) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if _, ok := b.accounts[key]; ok {
		return fmt.Errorf("%w: %s", ErrAccountExists, key)
	}
	b.accounts[key] = &record{
		owner: b.programID,
		data:  make([]byte, size),
	}
	return nil
}

// Account returns a copy of the record stored at key.
func (b *Bank) Account(key types.Pubkey) ([]byte, error) {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	rec, ok := b.accounts[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, key)
	}
	ret := make([]byte, len(rec.data))
	copy(ret, rec.data)
	return ret, nil
}

func (b *Bank) Mint(key types.Pubkey) (*state.Mint, error) {
	bz, err := b.Account(key)
	if err != nil {
		return nil, err
	}
	return state.UnpackMint(bz)
}

func (b *Bank) TokenAccount(key types.Pubkey) (*state.Account, error) {
	bz, err := b.Account(key)
	if err != nil {
		return nil, err
	}
	return state.UnpackAccount(bz)
}

// Execute runs d as signed by signers. The program works on copies of the
// records, which are stored back only if it succeeds.
func (b *Bank) Execute(d *instruction.Descriptor, signers ...types.Pubkey) error {
	if d.ProgramID != b.programID {
		return fmt.Errorf("%w: %s", ErrUnknownProgram, d.ProgramID)
	}
	signed := make(map[types.Pubkey]bool, len(signers))
	for _, s := range signers {
		signed[s] = true
	}

	b.mtx.Lock()
	defer b.mtx.Unlock()

	// a key listed twice is handed to the program as the same account
	infos := make([]*processor.AccountInfo, 0, len(d.Accounts))
	byKey := make(map[types.Pubkey]*processor.AccountInfo, len(d.Accounts))
	for _, meta := range d.Accounts {
		if meta.IsSigner && !signed[meta.Pubkey] {
			return fmt.Errorf("%w: %s", ErrMissingSigner, meta.Pubkey)
		}
		if info, ok := byKey[meta.Pubkey]; ok {
			info.IsSigner = info.IsSigner || meta.IsSigner
			info.IsWritable = info.IsWritable || meta.IsWritable
			infos = append(infos, info)
			continue
		}

		info := &processor.AccountInfo{
			Key:        meta.Pubkey,
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
		}
		if rec, ok := b.accounts[meta.Pubkey]; ok {
			info.Owner = rec.owner
			info.Data = make([]byte, len(rec.data))
			copy(info.Data, rec.data)
		} else if meta.IsWritable {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, meta.Pubkey)
		}
		byKey[meta.Pubkey] = info
		infos = append(infos, info)
	}

	if err := b.processor.Process(b.programID, infos, d.Data); err != nil {
		return err
	}

	for key, info := range byKey {
		if rec, ok := b.accounts[key]; ok && info.IsWritable {
			rec.data = info.Data
		}
	}
	return nil
}
