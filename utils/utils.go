package utils

import (
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	_ "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/consensys/gnark-crypto/ecc/twistededwards"
	gnark_hash "github.com/consensys/gnark-crypto/hash"
)

var (
	// CURVEID is the twisted Edwards curve the commitments and the range circuit live on.
	CURVEID = twistededwards.BN254
)

// mimcChunkSize keeps every chunk below the field modulus.
const mimcChunkSize = fr.Bytes - 1

func MiMCHasher() hash.Hash {
	return gnark_hash.MIMC_BN254.New()
}

// MiMCHash hashes arbitrary byte strings with MiMC.
// Each input is written as its length followed by 31-byte chunks, so that
// distinct input lists never hash the same field elements.
func MiMCHash(ins ...[]byte) []byte {
	hasher := MiMCHasher()

	write := func(block []byte) {
		if _, err := hasher.Write(block); err != nil {
			panic(err)
		}
	}

	var block [fr.Bytes]byte
	for _, in := range ins {
		var n fr.Element
		n.SetUint64(uint64(len(in)))
		nb := n.Bytes()
		write(nb[:])

		for i := 0; i < len(in); i += mimcChunkSize {
			end := min(i+mimcChunkSize, len(in))
			clear(block[:])
			copy(block[fr.Bytes-(end-i):], in[i:end])
			write(block[:])
		}
	}
	return hasher.Sum(nil)
}
