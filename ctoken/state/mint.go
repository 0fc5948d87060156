package state

import (
	"encoding/binary"
	"fmt"

	"github.com/kysee/ctoken/ctoken/types"
)

// MintLen is the canonical size of a packed Mint:
// [0,32) mint authority, [32,40) supply (little-endian), [40] initialized flag.
const MintLen = 41

// Mint describes a token type. Supply is public; only balances are hidden.
type Mint struct {
	MintAuthority types.Pubkey
	Supply        uint64
	Initialized   bool
}

func (m *Mint) IsInitialized() bool {
	return m.Initialized
}

// Pack returns the MintLen-byte layout of the mint.
func (m *Mint) Pack() []byte {
	bz := make([]byte, MintLen)
	m.packInto(bz)
	return bz
}

// PackInto writes the mint layout into dst, which must be exactly MintLen bytes.
func (m *Mint) PackInto(dst []byte) error {
	if err := checkLen("mint", dst, MintLen); err != nil {
		return err
	}
	m.packInto(dst)
	return nil
}

func (m *Mint) packInto(dst []byte) {
	copy(dst[0:32], m.MintAuthority.Bytes())
	binary.LittleEndian.PutUint64(dst[32:40], m.Supply)
	dst[40] = encodeBool(m.Initialized)
}

// UnpackMint decodes exactly MintLen bytes.
func UnpackMint(src []byte) (*Mint, error) {
	if err := checkLen("mint", src, MintLen); err != nil {
		return nil, err
	}
	authority, err := types.PubkeyFromBytes(src[0:32])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidAccountData, err)
	}
	initialized, err := decodeBool(src[40])
	if err != nil {
		return nil, err
	}
	return &Mint{
		MintAuthority: authority,
		Supply:        binary.LittleEndian.Uint64(src[32:40]),
		Initialized:   initialized,
	}, nil
}
