package instruction

import (
	"testing"

	"github.com/kysee/ctoken/ctoken/types"
	"github.com/stretchr/testify/require"
)

var programID = types.PubkeyFromSeed("ctoken-program")

func TestNewInitializeMint(t *testing.T) {
	mint, authority := types.RandPubkey(), types.RandPubkey()
	d := NewInitializeMint(programID, mint, authority)

	require.Equal(t, programID, d.ProgramID)
	require.Equal(t, []AccountMeta{
		{Pubkey: mint, IsSigner: false, IsWritable: true},
		{Pubkey: types.RentSysvarID, IsSigner: false, IsWritable: false},
	}, d.Accounts)

	ix, err := Unpack(d.Data)
	require.NoError(t, err)
	require.Equal(t, InitializeMint{MintAuthority: authority}, ix)
}

func TestNewMint(t *testing.T) {
	mint, account, authority := types.RandPubkey(), types.RandPubkey(), types.RandPubkey()
	md := randMintData()
	d := NewMint(programID, mint, account, authority, &md)

	require.Len(t, d.Accounts, 3)
	require.Equal(t, AccountMeta{Pubkey: mint, IsWritable: true}, d.Accounts[0])
	require.Equal(t, AccountMeta{Pubkey: account, IsWritable: true}, d.Accounts[1])
	// the minting authority is readonly and signs
	require.Equal(t, AccountMeta{Pubkey: authority, IsSigner: true, IsWritable: false}, d.Accounts[2])

	ix, err := Unpack(d.Data)
	require.NoError(t, err)
	require.Equal(t, Mint{Data: md}, ix)
}

func TestNewTransfer(t *testing.T) {
	src, dst := types.RandPubkey(), types.RandPubkey()
	td := randTransferData()
	d := NewTransfer(programID, src, dst, &td)

	require.Equal(t, []AccountMeta{
		{Pubkey: src, IsWritable: true},
		{Pubkey: dst, IsWritable: true},
	}, d.Accounts)
	for _, m := range d.Accounts {
		require.False(t, m.IsSigner)
	}

	ix, err := Unpack(d.Data)
	require.NoError(t, err)
	require.Equal(t, Transfer{Data: td}, ix)
}

func TestNewCloseAccount(t *testing.T) {
	src, dst := types.RandPubkey(), types.RandPubkey()
	d := NewCloseAccount(programID, src, dst)

	require.Equal(t, []AccountMeta{
		{Pubkey: src, IsWritable: true},
		{Pubkey: dst, IsWritable: true},
	}, d.Accounts)
	require.Equal(t, []byte{byte(TagCloseAccount)}, d.Data)
}
