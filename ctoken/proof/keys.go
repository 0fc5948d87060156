package proof

import (
	"io"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/test/unsafekzg"
)

const (
	provingKeyFile   = "range_proving.key"
	verifyingKeyFile = "range_verifying.key"
)

// Keys bundles the compiled range circuit with its plonk keys.
// Provers need all three; the ledger only needs VK.
type Keys struct {
	CCS constraint.ConstraintSystem
	PK  plonk.ProvingKey
	VK  plonk.VerifyingKey
}

// Setup compiles the range circuit and runs a fresh plonk setup.
func Setup() (*Keys, error) {
	ccs, err := CompileRangeCircuit()
	if err != nil {
		return nil, err
	}

	// todo: Use safe SRS generation
	srs, srsLagrange, err := unsafekzg.NewSRS(ccs)
	if err != nil {
		return nil, err
	}
	pk, vk, err := plonk.Setup(ccs, srs, srsLagrange)
	if err != nil {
		return nil, err
	}
	return &Keys{CCS: ccs, PK: pk, VK: vk}, nil
}

// SetupOrLoadKeys loads the plonk keys from dir if both exist; otherwise it
// runs Setup and saves the new keys there.
func SetupOrLoadKeys(dir string) (*Keys, error) {
	pkPath := filepath.Join(dir, provingKeyFile)
	vkPath := filepath.Join(dir, verifyingKeyFile)

	pk, pkErr := loadProvingKey(pkPath)
	vk, vkErr := loadVerifyingKey(vkPath)
	if pkErr == nil && vkErr == nil {
		ccs, err := CompileRangeCircuit()
		if err != nil {
			return nil, err
		}
		return &Keys{CCS: ccs, PK: pk, VK: vk}, nil
	}

	keys, err := Setup()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if err := saveKey(pkPath, keys.PK); err != nil {
		return nil, err
	}
	if err := saveKey(vkPath, keys.VK); err != nil {
		return nil, err
	}
	return keys, nil
}

// ExportSolidity writes a Solidity contract verifying range proofs made with k.
func (k *Keys) ExportSolidity(w io.Writer) error {
	return k.VK.ExportSolidity(w)
}

type keyWriter interface {
	WriteTo(w io.Writer) (int64, error)
}

func saveKey(path string, key keyWriter) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = key.WriteTo(f)
	return err
}

func loadProvingKey(path string) (plonk.ProvingKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pk := plonk.NewProvingKey(ecc.BN254)
	if _, err := pk.ReadFrom(f); err != nil {
		return nil, err
	}
	return pk, nil
}

func loadVerifyingKey(path string) (plonk.VerifyingKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	vk := plonk.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(f); err != nil {
		return nil, err
	}
	return vk, nil
}
