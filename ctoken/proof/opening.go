package proof

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/kysee/ctoken/ctoken/types"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

// Opening is the secret behind a commitment: the hidden balance and its
// blinding factor. It never goes on the ledger.
type Opening struct {
	Balance *uint256.Int
	Blind   *big.Int
}

// EmptyOpening opens the all-zero commitment of a fresh account.
func EmptyOpening() *Opening {
	return &Opening{
		Balance: uint256.NewInt(0),
		Blind:   new(big.Int),
	}
}

// Commitment recomputes the commitment of the opening.
func (o *Opening) Commitment() types.Commitment {
	return Commit(o.Balance.Uint64(), o.Blind)
}

// Add returns the opening of the sum of both commitments.
func (o *Opening) Add(other *Opening) *Opening {
	blind := new(big.Int).Add(o.Blind, other.Blind)
	return &Opening{
		Balance: new(uint256.Int).Add(o.Balance, other.Balance),
		Blind:   blind.Mod(blind, &curveParams.Order),
	}
}

// Sub returns the opening of o minus other.
func (o *Opening) Sub(other *Opening) (*Opening, error) {
	if o.Balance.Lt(other.Balance) {
		return nil, ErrInsufficientBalance
	}
	blind := new(big.Int).Sub(o.Blind, other.Blind)
	return &Opening{
		Balance: new(uint256.Int).Sub(o.Balance, other.Balance),
		Blind:   blind.Mod(blind, &curveParams.Order),
	}, nil
}
