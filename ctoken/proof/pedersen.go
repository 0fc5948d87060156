package proof

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	tedwards "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/kysee/ctoken/ctoken/types"
	"golang.org/x/crypto/blake2s"
)

var ErrInvalidCommitment = errors.New("invalid commitment")

var (
	curveParams = tedwards.GetEdwardsCurve()

	// baseG carries the amount, baseH the blinding factor.
	// Nobody knows log_G(H): H is hashed onto the curve.
	baseG = curveParams.Base
	baseH = hashToPoint([]byte("ctoken/pedersen/H"))
)

// Order returns the order of the commitment group.
func Order() *big.Int {
	return new(big.Int).Set(&curveParams.Order)
}

// Commit returns the Pedersen commitment amount·G + blind·H.
func Commit(amount uint64, blind *big.Int) types.Commitment {
	c := commitPoint(amount, blind)
	return encodePoint(&c)
}

// AddCommitments returns a+b.
func AddCommitments(a, b types.Commitment) (types.Commitment, error) {
	pa, err := decodePoint(a)
	if err != nil {
		return types.Commitment{}, err
	}
	pb, err := decodePoint(b)
	if err != nil {
		return types.Commitment{}, err
	}
	var sum tedwards.PointAffine
	sum.Add(&pa, &pb)
	return encodePoint(&sum), nil
}

// SubCommitments returns a-b.
func SubCommitments(a, b types.Commitment) (types.Commitment, error) {
	pa, err := decodePoint(a)
	if err != nil {
		return types.Commitment{}, err
	}
	pb, err := decodePoint(b)
	if err != nil {
		return types.Commitment{}, err
	}
	var neg, diff tedwards.PointAffine
	neg.Neg(&pb)
	diff.Add(&pa, &neg)
	return encodePoint(&diff), nil
}

func commitPoint(amount uint64, blind *big.Int) tedwards.PointAffine {
	var aG, rH, c tedwards.PointAffine
	aG.ScalarMultiplication(&baseG, new(big.Int).SetUint64(amount))
	rH.ScalarMultiplication(&baseH, blind)
	c.Add(&aG, &rH)
	return c
}

func identity() tedwards.PointAffine {
	var p tedwards.PointAffine
	p.X.SetZero()
	p.Y.SetOne()
	return p
}

// encodePoint compresses p. The identity is encoded as all zeroes, the
// layout of a freshly created account.
func encodePoint(p *tedwards.PointAffine) types.Commitment {
	if p.IsZero() {
		return types.Commitment{}
	}
	return p.Bytes()
}

// decodePoint rejects anything that is not the canonical encoding of a point
// of the prime-order subgroup.
func decodePoint(c [32]byte) (tedwards.PointAffine, error) {
	if c == [32]byte{} {
		return identity(), nil
	}
	var p tedwards.PointAffine
	if _, err := p.SetBytes(c[:]); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidCommitment, err)
	}
	if !p.IsOnCurve() {
		return p, fmt.Errorf("%w: not on curve", ErrInvalidCommitment)
	}
	if p.Bytes() != c {
		return p, fmt.Errorf("%w: non-canonical encoding", ErrInvalidCommitment)
	}
	// the identity is only ever encoded as all zeroes
	if p.IsZero() {
		return p, fmt.Errorf("%w: non-canonical identity", ErrInvalidCommitment)
	}
	var q tedwards.PointAffine
	q.ScalarMultiplication(&p, &curveParams.Order)
	if !q.IsZero() {
		return p, fmt.Errorf("%w: not in the prime-order subgroup", ErrInvalidCommitment)
	}
	return p, nil
}

// pointCoords returns the affine coordinates of a commitment, as assigned to
// the range circuit.
func pointCoords(c types.Commitment) (*big.Int, *big.Int, error) {
	p, err := decodePoint(c)
	if err != nil {
		return nil, nil, err
	}
	return p.X.BigInt(new(big.Int)), p.Y.BigInt(new(big.Int)), nil
}

// hashToPoint maps domain onto the prime-order subgroup by try-and-increment.
func hashToPoint(domain []byte) tedwards.PointAffine {
	var cofactor big.Int
	curveParams.Cofactor.BigInt(&cofactor)

	var ctr [4]byte
	for i := uint32(0); ; i++ {
		binary.BigEndian.PutUint32(ctr[:], i)
		h, _ := blake2s.New256(nil)
		h.Write(domain)
		h.Write(ctr[:])

		var p tedwards.PointAffine
		if _, err := p.SetBytes(h.Sum(nil)); err != nil || !p.IsOnCurve() {
			continue
		}
		p.ScalarMultiplication(&p, &cofactor)
		if p.IsZero() {
			continue
		}
		return p
	}
}

func randScalar() (*big.Int, error) {
	for {
		k, err := crand.Int(crand.Reader, &curveParams.Order)
		if err != nil {
			return nil, err
		}
		if k.Sign() != 0 {
			return k, nil
		}
	}
}
