// Package instruction encodes and decodes c-token instructions.
//
// Wire format: byte 0 is the tag, the rest is the tag-specific payload.
//
//	0 InitializeMint  32-byte mint authority
//	1 Mint            RLP-encoded types.MintData
//	2 Transfer        RLP-encoded types.TransferData
//	3 CloseAccount    empty
//
// Decoding is pure parsing; no proof is verified here.
package instruction

import (
	"fmt"

	"github.com/kysee/ctoken/ctoken/types"
)

type Tag uint8

const (
	TagInitializeMint Tag = iota
	TagMint
	TagTransfer
	TagCloseAccount
)

func (t Tag) String() string {
	switch t {
	case TagInitializeMint:
		return "InitializeMint"
	case TagMint:
		return "Mint"
	case TagTransfer:
		return "Transfer"
	case TagCloseAccount:
		return "CloseAccount"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Instruction is one of InitializeMint, Mint, Transfer or CloseAccount.
type Instruction interface {
	Tag() Tag
	Pack() []byte
	instruction()
}

// InitializeMint initializes a new mint.
//
// Accounts expected:
//
//  0. `[writable]` The mint to initialize.
//  1. `[]` Rent sysvar
type InitializeMint struct {
	MintAuthority types.Pubkey
}

// Mint mints new tokens into an account, initializing it on first use.
//
// Accounts expected:
//
//  0. `[writable]` The mint.
//  1. `[writable]` The account to mint tokens to.
//  2. `[signer]` The mint's minting authority.
type Mint struct {
	Data types.MintData
}

// Transfer moves a hidden amount between two accounts of the same mint.
// No account signs: the proof alone authorizes the transfer.
//
// Accounts expected:
//
//  0. `[writable]` The source account.
//  1. `[writable]` The destination account.
type Transfer struct {
	Data types.TransferData
}

// CloseAccount closes the source account.
//
// Accounts expected:
//
//  0. `[writable]` The source account.
//  1. `[writable]` The destination account.
type CloseAccount struct{}

func (InitializeMint) Tag() Tag { return TagInitializeMint }
func (Mint) Tag() Tag           { return TagMint }
func (Transfer) Tag() Tag       { return TagTransfer }
func (CloseAccount) Tag() Tag   { return TagCloseAccount }

func (InitializeMint) instruction() {}
func (Mint) instruction()           {}
func (Transfer) instruction()       {}
func (CloseAccount) instruction()   {}

func (ix InitializeMint) Pack() []byte {
	buf := make([]byte, 0, 1+types.PubkeyLen)
	buf = append(buf, byte(TagInitializeMint))
	return append(buf, ix.MintAuthority.Bytes()...)
}

func (ix Mint) Pack() []byte {
	return append([]byte{byte(TagMint)}, ix.Data.Bytes()...)
}

func (ix Transfer) Pack() []byte {
	return append([]byte{byte(TagTransfer)}, ix.Data.Bytes()...)
}

func (CloseAccount) Pack() []byte {
	return []byte{byte(TagCloseAccount)}
}

// Unpack decodes an instruction.
//
// InitializeMint is permissive: bytes after the 32-byte authority are
// ignored, matching what deployed clients already send. Every other variant
// must consume its input exactly.
func Unpack(input []byte) (Instruction, error) {
	if len(input) < 1 {
		return nil, types.ErrInvalidInstruction
	}
	tag, rest := Tag(input[0]), input[1:]

	switch tag {
	case TagInitializeMint:
		authority, _, err := unpackPubkey(rest)
		if err != nil {
			return nil, err
		}
		return InitializeMint{MintAuthority: authority}, nil
	case TagMint:
		md, err := types.DecodeMintData(rest)
		if err != nil {
			return nil, err
		}
		return Mint{Data: *md}, nil
	case TagTransfer:
		td, err := types.DecodeTransferData(rest)
		if err != nil {
			return nil, err
		}
		return Transfer{Data: *td}, nil
	case TagCloseAccount:
		if len(rest) != 0 {
			return nil, fmt.Errorf("%w: %s takes no payload, got(%d) bytes", types.ErrInvalidInstruction, tag, len(rest))
		}
		return CloseAccount{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown tag %d", types.ErrInvalidInstruction, uint8(tag))
	}
}

func unpackPubkey(input []byte) (types.Pubkey, []byte, error) {
	if len(input) < types.PubkeyLen {
		return types.Pubkey{}, nil, fmt.Errorf("%w: pubkey needs %d bytes, got(%d)", types.ErrInvalidInstruction, types.PubkeyLen, len(input))
	}
	pk, err := types.PubkeyFromBytes(input[:types.PubkeyLen])
	if err != nil {
		return types.Pubkey{}, nil, err
	}
	return pk, input[types.PubkeyLen:], nil
}
