package ledger

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/consensys/gnark-crypto/accumulator/merkletree"
	"github.com/kysee/ctoken/ctoken/types"
	"github.com/kysee/ctoken/utils"
)

// AccountProof proves that a record is part of the state committed to by Root.
type AccountProof struct {
	Root      []byte
	ProofSet  [][]byte
	Index     uint64
	NumLeaves uint64
}

func accountLeaf(key, owner types.Pubkey, data []byte) []byte {
	return utils.MiMCHash(key[:], owner[:], data)
}

// sortedKeys must be called with b.mtx held.
func (b *Bank) sortedKeys() []types.Pubkey {
	keys := make([]types.Pubkey, 0, len(b.accounts))
	for k := range b.accounts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})
	return keys
}

// StateRoot is the MiMC merkle root over all records ordered by key.
// It is nil for an empty bank.
func (b *Bank) StateRoot() []byte {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	tree := merkletree.New(utils.MiMCHasher())
	for _, k := range b.sortedKeys() {
		rec := b.accounts[k]
		tree.Push(accountLeaf(k, rec.owner, rec.data))
	}
	return tree.Root()
}

func (b *Bank) AccountProof(key types.Pubkey) (*AccountProof, error) {
	b.mtx.RLock()
	defer b.mtx.RUnlock()

	var buf bytes.Buffer
	idx, found := uint64(0), false
	for i, k := range b.sortedKeys() {
		if k == key {
			idx, found = uint64(i), true
		}
		rec := b.accounts[k]
		buf.Write(accountLeaf(k, rec.owner, rec.data))
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, key)
	}

	root, proofSet, numLeaves, err := merkletree.BuildReaderProof(
		&buf,
		utils.MiMCHasher(),
		utils.MiMCHasher().Size(),
		idx,
	)
	if err != nil {
		return nil, err
	}
	return &AccountProof{
		Root:      root,
		ProofSet:  proofSet,
		Index:     idx,
		NumLeaves: numLeaves,
	}, nil
}

// Verify checks that the record (key, owner, data) is the proven leaf.
func (p *AccountProof) Verify(key, owner types.Pubkey, data []byte) bool {
	if len(p.ProofSet) == 0 || !bytes.Equal(p.ProofSet[0], accountLeaf(key, owner, data)) {
		return false
	}
	return merkletree.VerifyProof(utils.MiMCHasher(), p.Root, p.ProofSet, p.Index, p.NumLeaves)
}
