package types

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPubkeyCodec(t *testing.T) {
	pk := RandPubkey()

	bz := pk.Bytes()
	require.Len(t, bz, PubkeyLen)
	require.Equal(t, pk[:], bz)

	pk1, err := PubkeyFromBytes(bz)
	require.NoError(t, err)
	require.Equal(t, pk, pk1)

	// Bytes must not alias the key
	bz[0] ^= 0xff
	require.NotEqual(t, pk[0], bz[0])
}

func TestPubkeyWrongLength(t *testing.T) {
	for _, n := range []int{0, 1, 31, 33, 64} {
		_, err := PubkeyFromBytes(make([]byte, n))
		require.ErrorIs(t, err, ErrKeyLength)
	}
}

func TestPubkeyBase58(t *testing.T) {
	var zero Pubkey
	require.Equal(t, "11111111111111111111111111111111", zero.String())

	ones := Pubkey(bytes.Repeat([]byte{0xff}, PubkeyLen))
	require.Equal(t, "JEKNVnkbo3jma5nREBBJCDoXFVeKkD56V3xKrvRmWxFG", ones.String())

	pk := RandPubkey()
	pk1, err := ParsePubkey(pk.String())
	require.NoError(t, err)
	require.Equal(t, pk, pk1)

	_, err = ParsePubkey("0OIl")
	require.Error(t, err)

	// a valid base58 string of the wrong size
	_, err = ParsePubkey("2g")
	require.ErrorIs(t, err, ErrKeyLength)
}

func TestRentSysvarID(t *testing.T) {
	require.False(t, RentSysvarID.IsZero())
	require.Equal(t, "SysvarRent111111111111111111111111111111111", RentSysvarID.String())
}

func TestPubkeyFromSeed(t *testing.T) {
	require.Equal(t, PubkeyFromSeed("a"), PubkeyFromSeed("a"))
	require.NotEqual(t, PubkeyFromSeed("a"), PubkeyFromSeed("b"))
}
