package proof

import (
	"bytes"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
	"github.com/holiman/uint256"
	"github.com/kysee/ctoken/ctoken/types"
	"github.com/rs/zerolog"
)

// Prover builds transfer payloads. It needs the proving key and the compiled
// circuit, so it runs on the client side.
type Prover struct {
	keys *Keys
	log  zerolog.Logger
}

func NewProver(keys *Keys, log zerolog.Logger) *Prover {
	return &Prover{keys: keys, log: log}
}

// TransferOpenings are the secrets behind a transfer payload. The sender keeps
// SrcNew; Amount must reach the recipient so it can update its own opening.
type TransferOpenings struct {
	Amount *Opening
	SrcNew *Opening
}

// ProveTransfer moves amount out of the account opened by src.
func (p *Prover) ProveTransfer(src *Opening, amount uint64) (*types.TransferData, *TransferOpenings, error) {
	amtBlind, err := randScalar()
	if err != nil {
		return nil, nil, err
	}
	amt := &Opening{
		Balance: uint256.NewInt(amount),
		Blind:   amtBlind,
	}
	srcNew, err := src.Sub(amt)
	if err != nil {
		return nil, nil, err
	}
	if !srcNew.Balance.IsUint64() {
		return nil, nil, fmt.Errorf("remaining balance %s exceeds %d bits", srcNew.Balance.Dec(), RangeBits)
	}

	td := &types.TransferData{
		AmountComm: amt.Commitment(),
		SrcNewComm: srcNew.Commitment(),
	}

	assignment, err := publicAssignment(td)
	if err != nil {
		return nil, nil, err
	}
	assignment.Amount = amount
	assignment.AmountBlind = amt.Blind
	assignment.Balance = srcNew.Balance.Uint64()
	assignment.BalanceBlind = srcNew.Blind

	wtn, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, nil, err
	}

	proof, err := plonk.Prove(
		p.keys.CCS,
		p.keys.PK,
		wtn,
		backend.WithSolverOptions(
			solver.WithLogger(p.log),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	bufProof := bytes.NewBuffer(nil)
	if _, err := proof.WriteTo(bufProof); err != nil {
		return nil, nil, err
	}
	td.Proof = bufProof.Bytes()

	return td, &TransferOpenings{Amount: amt, SrcNew: srcNew}, nil
}

// publicAssignment fills the public part of the range circuit from a payload.
func publicAssignment(td *types.TransferData) (*RangeCircuit, error) {
	ax, ay, err := pointCoords(td.AmountComm)
	if err != nil {
		return nil, err
	}
	sx, sy, err := pointCoords(td.SrcNewComm)
	if err != nil {
		return nil, err
	}
	var assignment RangeCircuit
	assignment.AmountComm.X, assignment.AmountComm.Y = ax, ay
	assignment.SrcNewComm.X, assignment.SrcNewComm.Y = sx, sy
	return &assignment, nil
}
