package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// MintData is the proof-bearing payload of a Mint instruction.
// Supply is public, so the amount travels in plaintext; Proof attests that
// Comm commits to exactly Amount.
type MintData struct {
	Amount uint64
	Comm   Commitment
	Proof  []byte
}

// TransferData is the proof-bearing payload of a Transfer instruction.
type TransferData struct {
	// AmountComm commits to the hidden transferred amount.
	AmountComm Commitment
	// SrcNewComm is the source commitment after the transfer.
	SrcNewComm Commitment
	Proof      []byte
}

// Bytes returns the RLP encoding of the payload.
// It panics if the encoding fails, which cannot happen for these field types.
func (md *MintData) Bytes() []byte {
	bz, err := rlp.EncodeToBytes(md)
	if err != nil {
		panic(fmt.Sprintf("failed to RLP encode MintData: %v", err))
	}
	return bz
}

// DecodeMintData decodes an RLP payload. Trailing bytes are rejected.
func DecodeMintData(bz []byte) (*MintData, error) {
	md := &MintData{}
	if err := rlp.DecodeBytes(bz, md); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(md.Proof) == 0 {
		md.Proof = nil
	}
	return md, nil
}

func (td *TransferData) Bytes() []byte {
	bz, err := rlp.EncodeToBytes(td)
	if err != nil {
		panic(fmt.Sprintf("failed to RLP encode TransferData: %v", err))
	}
	return bz
}

func DecodeTransferData(bz []byte) (*TransferData, error) {
	td := &TransferData{}
	if err := rlp.DecodeBytes(bz, td); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(td.Proof) == 0 {
		td.Proof = nil
	}
	return td, nil
}
