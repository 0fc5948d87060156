package state

import (
	"fmt"

	"github.com/kysee/ctoken/ctoken/types"
)

// AccountLen is the canonical size of a packed Account:
// [0,32) mint, [32] initialized flag, [33,65) commitment.
const AccountLen = 65

// Account is a holder's confidential balance for one mint.
type Account struct {
	Mint        types.Pubkey
	Initialized bool
	Comm        types.Commitment
}

func (a *Account) IsInitialized() bool {
	return a.Initialized
}

func (a *Account) Pack() []byte {
	bz := make([]byte, AccountLen)
	a.packInto(bz)
	return bz
}

// PackInto writes the account layout into dst, which must be exactly AccountLen bytes.
func (a *Account) PackInto(dst []byte) error {
	if err := checkLen("account", dst, AccountLen); err != nil {
		return err
	}
	a.packInto(dst)
	return nil
}

func (a *Account) packInto(dst []byte) {
	copy(dst[0:32], a.Mint.Bytes())
	dst[32] = encodeBool(a.Initialized)
	copy(dst[33:65], a.Comm[:])
}

// UnpackAccount decodes exactly AccountLen bytes.
func UnpackAccount(src []byte) (*Account, error) {
	if err := checkLen("account", src, AccountLen); err != nil {
		return nil, err
	}
	mint, err := types.PubkeyFromBytes(src[0:32])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidAccountData, err)
	}
	initialized, err := decodeBool(src[32])
	if err != nil {
		return nil, err
	}
	acct := &Account{
		Mint:        mint,
		Initialized: initialized,
	}
	copy(acct.Comm[:], src[33:65])
	return acct, nil
}
