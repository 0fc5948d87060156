package proof

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	tedwards "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/frontend"
	"github.com/kysee/ctoken/ctoken/types"
)

// ErrVerification wraps every rejected proof payload.
var ErrVerification = errors.New("proof verification failed")

// Verifier checks mint and transfer payloads against the current commitments
// and returns the commitments to store. It holds no mutable state.
type Verifier struct {
	vk plonk.VerifyingKey
}

func NewVerifier(vk plonk.VerifyingKey) *Verifier {
	return &Verifier{vk: vk}
}

// VerifyMint checks that data.Comm opens to data.Amount and adds it to dest.
func (v *Verifier) VerifyMint(dest types.Commitment, data *types.MintData) (*types.MintEffect, error) {
	if err := verifyMintProof(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	comm, err := AddCommitments(dest, data.Comm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	return &types.MintEffect{Comm: comm, Amount: data.Amount}, nil
}

// VerifyTransfer checks that src - AmountComm == SrcNewComm and that both
// AmountComm and SrcNewComm hide values in range.
func (v *Verifier) VerifyTransfer(src, dst types.Commitment, data *types.TransferData) (*types.TransferEffect, error) {
	srcP, err := decodePoint(src)
	if err != nil {
		return nil, fmt.Errorf("%w: source: %v", ErrVerification, err)
	}
	dstP, err := decodePoint(dst)
	if err != nil {
		return nil, fmt.Errorf("%w: destination: %v", ErrVerification, err)
	}
	amtP, err := decodePoint(data.AmountComm)
	if err != nil {
		return nil, fmt.Errorf("%w: amount: %v", ErrVerification, err)
	}
	newP, err := decodePoint(data.SrcNewComm)
	if err != nil {
		return nil, fmt.Errorf("%w: new source: %v", ErrVerification, err)
	}

	var negAmt, expected tedwards.PointAffine
	negAmt.Neg(&amtP)
	expected.Add(&srcP, &negAmt)
	if !expected.Equal(&newP) {
		return nil, fmt.Errorf("%w: new source commitment does not match", ErrVerification)
	}

	if err := v.verifyRangeProof(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}

	var dstNew tedwards.PointAffine
	dstNew.Add(&dstP, &amtP)
	return &types.TransferEffect{
		Src: encodePoint(&newP),
		Dst: encodePoint(&dstNew),
	}, nil
}

func (v *Verifier) verifyRangeProof(data *types.TransferData) error {
	proof := plonk.NewProof(ecc.BN254)
	n, err := proof.ReadFrom(bytes.NewReader(data.Proof))
	if err != nil {
		return err
	}
	if n != int64(len(data.Proof)) {
		return fmt.Errorf("range proof: %d trailing bytes", int64(len(data.Proof))-n)
	}

	assignment, err := publicAssignment(data)
	if err != nil {
		return err
	}
	pubWtn, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return err
	}
	return plonk.Verify(proof, v.vk, pubWtn)
}
