package instruction

import (
	"bytes"
	"testing"

	"github.com/kysee/ctoken/ctoken/types"
	"github.com/stretchr/testify/require"
)

func randMintData() types.MintData {
	md := types.MintData{Amount: 42, Proof: types.RandBytes(64)}
	copy(md.Comm[:], types.RandBytes(types.CommitmentLen))
	return md
}

func randTransferData() types.TransferData {
	td := types.TransferData{Proof: types.RandBytes(500)}
	copy(td.AmountComm[:], types.RandBytes(types.CommitmentLen))
	copy(td.SrcNewComm[:], types.RandBytes(types.CommitmentLen))
	return td
}

func TestRoundTrip(t *testing.T) {
	for _, ix := range []Instruction{
		InitializeMint{MintAuthority: types.RandPubkey()},
		InitializeMint{},
		Mint{Data: randMintData()},
		Mint{Data: types.MintData{}},
		Transfer{Data: randTransferData()},
		CloseAccount{},
	} {
		bz := ix.Pack()
		require.Equal(t, byte(ix.Tag()), bz[0])

		ix1, err := Unpack(bz)
		require.NoError(t, err, ix.Tag().String())
		require.Equal(t, ix, ix1)
	}
}

func TestInitializeMintBytes(t *testing.T) {
	key := types.RandPubkey()
	bz := InitializeMint{MintAuthority: key}.Pack()
	require.Equal(t, append([]byte{0}, key[:]...), bz)

	ix, err := Unpack(bz)
	require.NoError(t, err)
	require.Equal(t, key, ix.(InitializeMint).MintAuthority)
}

func TestCloseAccountIsTagOnly(t *testing.T) {
	require.Equal(t, []byte{3}, CloseAccount{}.Pack())

	_, err := Unpack([]byte{3, 0})
	require.ErrorIs(t, err, types.ErrInvalidInstruction)
}

func TestUnpackEmpty(t *testing.T) {
	_, err := Unpack(nil)
	require.ErrorIs(t, err, types.ErrInvalidInstruction)
	_, err = Unpack([]byte{})
	require.ErrorIs(t, err, types.ErrInvalidInstruction)
}

func TestUnpackShortPubkey(t *testing.T) {
	for n := 0; n < types.PubkeyLen; n++ {
		_, err := Unpack(append([]byte{0}, make([]byte, n)...))
		require.ErrorIs(t, err, types.ErrInvalidInstruction)
	}
}

func TestUnpackInitializeMintIgnoresTrailingBytes(t *testing.T) {
	key := types.RandPubkey()
	bz := append(InitializeMint{MintAuthority: key}.Pack(), 0xde, 0xad, 0xbe, 0xef)

	ix, err := Unpack(bz)
	require.NoError(t, err)
	require.Equal(t, InitializeMint{MintAuthority: key}, ix)
}

func TestUnpackUnknownTag(t *testing.T) {
	for tag := 4; tag < 256; tag++ {
		_, err := Unpack([]byte{byte(tag)})
		require.ErrorIs(t, err, types.ErrInvalidInstruction)

		_, err = Unpack(append([]byte{byte(tag)}, make([]byte, 64)...))
		require.ErrorIs(t, err, types.ErrInvalidInstruction)
	}
}

func TestUnpackMalformedPayload(t *testing.T) {
	md := randMintData()
	bz := Mint{Data: md}.Pack()

	_, err := Unpack(bz[:len(bz)-1])
	require.ErrorIs(t, err, types.ErrInvalidPayload)

	_, err = Unpack(append(bz, 0x01))
	require.ErrorIs(t, err, types.ErrInvalidPayload)

	// a mint payload behind the transfer tag
	bz[0] = byte(TagTransfer)
	_, err = Unpack(bz)
	require.ErrorIs(t, err, types.ErrInvalidPayload)

	_, err = Unpack([]byte{byte(TagMint)})
	require.ErrorIs(t, err, types.ErrInvalidPayload)
}

func TestUnpackDoesNotAliasInput(t *testing.T) {
	key := types.RandPubkey()
	bz := InitializeMint{MintAuthority: key}.Pack()
	ix, err := Unpack(bz)
	require.NoError(t, err)

	copy(bz[1:], bytes.Repeat([]byte{0}, types.PubkeyLen))
	require.Equal(t, key, ix.(InitializeMint).MintAuthority)
}

func TestTagString(t *testing.T) {
	require.Equal(t, "InitializeMint", TagInitializeMint.String())
	require.Equal(t, "CloseAccount", TagCloseAccount.String())
	require.Equal(t, "Tag(9)", Tag(9).String())
}
