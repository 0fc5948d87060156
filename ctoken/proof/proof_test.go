package proof

import (
	"bytes"
	"math/big"
	"os"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	"github.com/holiman/uint256"
	"github.com/kysee/ctoken/ctoken/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var (
	testKeys *Keys
	prover   *Prover
	verifier *Verifier
)

func TestMain(m *testing.M) {
	var err error
	if testKeys, err = Setup(); err != nil {
		panic(err)
	}
	prover = NewProver(testKeys, zerolog.Nop())
	verifier = NewVerifier(testKeys.VK)
	os.Exit(m.Run())
}

func TestCommitHomomorphic(t *testing.T) {
	r1, err := randScalar()
	require.NoError(t, err)
	r2, err := randScalar()
	require.NoError(t, err)

	c1 := Commit(30, r1)
	c2 := Commit(12, r2)

	sum, err := AddCommitments(c1, c2)
	require.NoError(t, err)
	r := new(big.Int).Add(r1, r2)
	require.Equal(t, Commit(42, r.Mod(r, Order())), sum)

	diff, err := SubCommitments(sum, c2)
	require.NoError(t, err)
	require.Equal(t, c1, diff)

	// the zero commitment is the identity
	same, err := AddCommitments(c1, types.Commitment{})
	require.NoError(t, err)
	require.Equal(t, c1, same)
	require.True(t, Commit(0, new(big.Int)).IsZero())

	zero, err := SubCommitments(c1, c1)
	require.NoError(t, err)
	require.True(t, zero.IsZero())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	rejected := 0
	for i := 0; i < 32; i++ {
		var c [32]byte
		copy(c[:], types.RandBytes(32))
		if _, err := decodePoint(c); err != nil {
			require.ErrorIs(t, err, ErrInvalidCommitment)
			rejected++
		}
	}
	// a random string is a canonical subgroup point with probability ~1/16
	require.Greater(t, rejected, 16)
}

func TestIdentityEncodingUnique(t *testing.T) {
	id := identity()
	require.True(t, encodePoint(&id).IsZero())

	p, err := decodePoint([32]byte{})
	require.NoError(t, err)
	require.True(t, p.IsZero())

	// the compressed form of the identity is not accepted
	_, err = decodePoint(id.Bytes())
	require.ErrorIs(t, err, ErrInvalidCommitment)
	_, err = AddCommitments(id.Bytes(), Commit(1, big.NewInt(1)))
	require.ErrorIs(t, err, ErrInvalidCommitment)
}

func TestGeneratorsIndependent(t *testing.T) {
	require.False(t, baseH.Equal(&baseG))
	require.True(t, baseH.IsOnCurve())
	require.Equal(t, baseH, hashToPoint([]byte("ctoken/pedersen/H")))
}

func TestOpening(t *testing.T) {
	o := EmptyOpening()
	require.True(t, o.Commitment().IsZero())

	md, minted, err := ProveMint(100)
	require.NoError(t, err)
	require.Equal(t, md.Comm, minted.Commitment())

	o = o.Add(minted)
	require.Equal(t, uint256.NewInt(100), o.Balance)
	require.Equal(t, md.Comm, o.Commitment())

	_, err = o.Sub(&Opening{Balance: uint256.NewInt(101), Blind: big.NewInt(1)})
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestVerifyMint(t *testing.T) {
	md, opening, err := ProveMint(1_000)
	require.NoError(t, err)
	require.Len(t, md.Proof, MintProofLen)

	// into an empty account
	effect, err := verifier.VerifyMint(types.Commitment{}, md)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), effect.Amount)
	require.Equal(t, md.Comm, effect.Comm)

	// into an account that already holds a balance
	md2, opening2, err := ProveMint(5)
	require.NoError(t, err)
	effect2, err := verifier.VerifyMint(effect.Comm, md2)
	require.NoError(t, err)
	require.Equal(t, opening.Add(opening2).Commitment(), effect2.Comm)
}

func TestVerifyMintRejects(t *testing.T) {
	md, _, err := ProveMint(1_000)
	require.NoError(t, err)

	// claimed amount differs from the committed one
	forged := *md
	forged.Amount = 1_000_000
	_, err = verifier.VerifyMint(types.Commitment{}, &forged)
	require.ErrorIs(t, err, ErrVerification)

	// tampered response
	forged = *md
	forged.Proof = append([]byte(nil), md.Proof...)
	forged.Proof[63] ^= 0x01
	_, err = verifier.VerifyMint(types.Commitment{}, &forged)
	require.ErrorIs(t, err, ErrVerification)

	// truncated proof
	forged = *md
	forged.Proof = md.Proof[:32]
	_, err = verifier.VerifyMint(types.Commitment{}, &forged)
	require.ErrorIs(t, err, ErrVerification)

	// proof for another commitment
	other, _, err := ProveMint(1_000)
	require.NoError(t, err)
	forged = *md
	forged.Proof = other.Proof
	_, err = verifier.VerifyMint(types.Commitment{}, &forged)
	require.ErrorIs(t, err, ErrVerification)
}

func TestRangeCircuit(t *testing.T) {
	src, err := randScalar()
	require.NoError(t, err)
	amtBlind, err := randScalar()
	require.NoError(t, err)
	balBlind := new(big.Int).Sub(src, amtBlind)
	balBlind.Mod(balBlind, Order())

	td := &types.TransferData{
		AmountComm: Commit(10, amtBlind),
		SrcNewComm: Commit(90, balBlind),
	}
	witness, err := publicAssignment(td)
	require.NoError(t, err)
	witness.Amount = 10
	witness.AmountBlind = amtBlind
	witness.Balance = 90
	witness.BalanceBlind = balBlind

	assert := test.NewAssert(t)
	assert.SolvingSucceeded(&RangeCircuit{}, witness, test.WithCurves(ecc.BN254))

	// the amount does not match the commitment
	bad := *witness
	bad.Amount = 11
	assert.SolvingFailed(&RangeCircuit{}, &bad, test.WithCurves(ecc.BN254))
}

func TestVerifyTransfer(t *testing.T) {
	md, src, err := ProveMint(100)
	require.NoError(t, err)
	srcComm := md.Comm

	dstMd, dst, err := ProveMint(7)
	require.NoError(t, err)
	dstComm := dstMd.Comm

	td, openings, err := prover.ProveTransfer(src, 40)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(60), openings.SrcNew.Balance)
	require.Equal(t, uint256.NewInt(40), openings.Amount.Balance)

	effect, err := verifier.VerifyTransfer(srcComm, dstComm, td)
	require.NoError(t, err)
	require.Equal(t, openings.SrcNew.Commitment(), effect.Src)
	require.Equal(t, dst.Add(openings.Amount).Commitment(), effect.Dst)

	// the payload was made for another source
	_, err = verifier.VerifyTransfer(dstComm, srcComm, td)
	require.ErrorIs(t, err, ErrVerification)

	// swapped commitments
	forged := *td
	forged.AmountComm, forged.SrcNewComm = dstComm, srcComm
	_, err = verifier.VerifyTransfer(srcComm, dstComm, &forged)
	require.ErrorIs(t, err, ErrVerification)

	// garbage proof bytes
	forged = *td
	forged.Proof = types.RandBytes(len(td.Proof))
	_, err = verifier.VerifyTransfer(srcComm, dstComm, &forged)
	require.ErrorIs(t, err, ErrVerification)

	// valid proof followed by trailing bytes
	forged = *td
	forged.Proof = append(append([]byte(nil), td.Proof...), 1, 2, 3)
	_, err = verifier.VerifyTransfer(srcComm, dstComm, &forged)
	require.ErrorIs(t, err, ErrVerification)

	// truncated proof
	forged = *td
	forged.Proof = td.Proof[:len(td.Proof)-1]
	_, err = verifier.VerifyTransfer(srcComm, dstComm, &forged)
	require.ErrorIs(t, err, ErrVerification)
}

func TestProveTransferInsufficient(t *testing.T) {
	_, src, err := ProveMint(10)
	require.NoError(t, err)
	_, _, err = prover.ProveTransfer(src, 11)
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestSetupOrLoadKeys(t *testing.T) {
	dir := t.TempDir()

	keys, err := SetupOrLoadKeys(dir)
	require.NoError(t, err)
	require.FileExists(t, dir+"/"+provingKeyFile)
	require.FileExists(t, dir+"/"+verifyingKeyFile)

	loaded, err := SetupOrLoadKeys(dir)
	require.NoError(t, err)

	// a proof made with the saved keys verifies with the loaded ones
	md, src, err := ProveMint(50)
	require.NoError(t, err)
	td, _, err := NewProver(keys, zerolog.Nop()).ProveTransfer(src, 20)
	require.NoError(t, err)
	_, err = NewVerifier(loaded.VK).VerifyTransfer(md.Comm, types.Commitment{}, td)
	require.NoError(t, err)
}

func TestExportSolidity(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testKeys.ExportSolidity(&buf))
	require.Contains(t, buf.String(), "pragma solidity")
}
