package proof

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
	std_tedwards "github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/kysee/ctoken/utils"
)

// RangeBits bounds every hidden amount and balance to [0, 2^RangeBits).
const RangeBits = 64

// RangeCircuit proves that both commitments of a transfer open to values in
// [0, 2^RangeBits): the transferred amount and the remaining source balance.
// Together with the homomorphic check SrcOld - AmountComm == SrcNewComm done
// by the verifier, no balance can go negative.
type RangeCircuit struct {
	AmountComm std_tedwards.Point `gnark:",public"`
	SrcNewComm std_tedwards.Point `gnark:",public"`

	Amount       frontend.Variable
	AmountBlind  frontend.Variable
	Balance      frontend.Variable
	BalanceBlind frontend.Variable
}

func (cc *RangeCircuit) Define(api frontend.API) error {
	curve, err := std_tedwards.NewEdCurve(api, utils.CURVEID)
	if err != nil {
		return err
	}

	g := std_tedwards.Point{
		X: curve.Params().Base[0],
		Y: curve.Params().Base[1],
	}
	h := std_tedwards.Point{
		X: baseH.X.BigInt(new(big.Int)),
		Y: baseH.Y.BigInt(new(big.Int)),
	}

	assertOpening(api, curve, g, h, cc.AmountComm, cc.Amount, cc.AmountBlind)
	assertOpening(api, curve, g, h, cc.SrcNewComm, cc.Balance, cc.BalanceBlind)
	return nil
}

// assertOpening checks comm == value·G + blind·H with value < 2^RangeBits.
func assertOpening(
	api frontend.API, curve std_tedwards.Curve,
	g, h, comm std_tedwards.Point,
	value, blind frontend.Variable,
) {
	_ = api.ToBinary(value, RangeBits)

	vG := curve.ScalarMul(g, value)
	bH := curve.ScalarMul(h, blind)
	computed := curve.Add(vG, bH)

	api.AssertIsEqual(comm.X, computed.X)
	api.AssertIsEqual(comm.Y, computed.Y)
}

func CompileRangeCircuit() (constraint.ConstraintSystem, error) {
	var cc RangeCircuit
	return frontend.Compile(ecc.BN254.ScalarField(), scs.NewBuilder, &cc)
}
