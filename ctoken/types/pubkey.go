package types

import (
	"fmt"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/blake2s"
)

const PubkeyLen = 32

// Pubkey is a 32-byte account address.
type Pubkey [PubkeyLen]byte

var (
	// RentSysvarID is the address of the environment's rent sysvar.
	RentSysvarID = MustParsePubkey("SysvarRent111111111111111111111111111111111")
)

// PubkeyFromBytes decodes a key field. The input must be exactly PubkeyLen bytes.
func PubkeyFromBytes(bz []byte) (Pubkey, error) {
	var pk Pubkey
	if len(bz) != PubkeyLen {
		return pk, fmt.Errorf("%w: expected(%d), got(%d)", ErrKeyLength, PubkeyLen, len(bz))
	}
	copy(pk[:], bz)
	return pk, nil
}

// PubkeyFromSeed derives a deterministic key from a seed string.
func PubkeyFromSeed(seed string) Pubkey {
	return blake2s.Sum256([]byte(seed))
}

func ParsePubkey(s string) (Pubkey, error) {
	bz := base58.Decode(s)
	if len(bz) == 0 && len(s) > 0 {
		return Pubkey{}, fmt.Errorf("invalid base58 pubkey: %q", s)
	}
	return PubkeyFromBytes(bz)
}

func MustParsePubkey(s string) Pubkey {
	pk, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// Bytes re-emits all 32 bytes of the key.
func (pk Pubkey) Bytes() []byte {
	bz := make([]byte, PubkeyLen)
	copy(bz, pk[:])
	return bz
}

func (pk Pubkey) String() string {
	return base58.Encode(pk[:])
}

func (pk Pubkey) IsZero() bool {
	return pk == Pubkey{}
}
