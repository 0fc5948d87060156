package proof

import (
	"encoding/binary"
	"fmt"
	"math/big"

	tedwards "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/holiman/uint256"
	"github.com/kysee/ctoken/ctoken/types"
	"golang.org/x/crypto/blake2s"
)

// MintProofLen is the size of a mint proof: R (32 bytes) || s (32 bytes).
const MintProofLen = 64

var mintDomain = []byte("ctoken/mint/v1")

// ProveMint commits to amount under a fresh blinding factor and proves that
// the commitment opens to exactly amount.
//
// The proof is a Schnorr proof of knowledge of r with C - amount·G = r·H.
func ProveMint(amount uint64) (*types.MintData, *Opening, error) {
	blind, err := randScalar()
	if err != nil {
		return nil, nil, err
	}
	comm := Commit(amount, blind)

	k, err := randScalar()
	if err != nil {
		return nil, nil, err
	}
	var R tedwards.PointAffine
	R.ScalarMultiplication(&baseH, k)
	rBytes := R.Bytes()

	e := mintChallenge(comm, amount, rBytes)
	s := new(big.Int).Mul(e, blind)
	s.Add(s, k)
	s.Mod(s, &curveParams.Order)

	proof := make([]byte, MintProofLen)
	copy(proof[:32], rBytes[:])
	s.FillBytes(proof[32:])

	return &types.MintData{
			Amount: amount,
			Comm:   comm,
			Proof:  proof,
		}, &Opening{
			Balance: uint256.NewInt(amount),
			Blind:   blind,
		}, nil
}

func verifyMintProof(md *types.MintData) error {
	if len(md.Proof) != MintProofLen {
		return fmt.Errorf("mint proof: expected(%d) bytes, got(%d)", MintProofLen, len(md.Proof))
	}
	C, err := decodePoint(md.Comm)
	if err != nil {
		return err
	}
	var rBytes [32]byte
	copy(rBytes[:], md.Proof[:32])
	R, err := decodePoint(rBytes)
	if err != nil {
		return err
	}
	s := new(big.Int).SetBytes(md.Proof[32:])
	if s.Cmp(&curveParams.Order) >= 0 {
		return fmt.Errorf("mint proof: scalar out of range")
	}
	e := mintChallenge(md.Comm, md.Amount, rBytes)

	// P = C - amount·G
	var aG, P tedwards.PointAffine
	aG.ScalarMultiplication(&baseG, new(big.Int).SetUint64(md.Amount))
	aG.Neg(&aG)
	P.Add(&C, &aG)

	// s·H == R + e·P
	var lhs, eP, rhs tedwards.PointAffine
	lhs.ScalarMultiplication(&baseH, s)
	eP.ScalarMultiplication(&P, e)
	rhs.Add(&R, &eP)
	if !lhs.Equal(&rhs) {
		return fmt.Errorf("mint proof: commitment does not open to %d", md.Amount)
	}
	return nil
}

func mintChallenge(comm types.Commitment, amount uint64, R [32]byte) *big.Int {
	h, _ := blake2s.New256(nil)
	hb := baseH.Bytes()
	var amt [8]byte
	binary.LittleEndian.PutUint64(amt[:], amount)

	h.Write(mintDomain)
	h.Write(hb[:])
	h.Write(comm[:])
	h.Write(amt[:])
	h.Write(R[:])

	e := new(big.Int).SetBytes(h.Sum(nil))
	return e.Mod(e, &curveParams.Order)
}
