// Package state holds the fixed-layout records persisted by the ledger:
// a Mint per token type and an Account per holder.
//
// Both records have a single canonical length. Anything stored with another
// length is corrupt and is rejected with types.ErrInvalidAccountData; a
// partially decoded record is never returned.
package state

import (
	"fmt"

	"github.com/kysee/ctoken/ctoken/types"
)

// decodeBool accepts only the canonical 0/1 encoding.
func decodeBool(b byte) (bool, error) {
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: invalid bool byte 0x%02x", types.ErrInvalidAccountData, b)
	}
}

func encodeBool(v bool) byte {
	if v {
		return 1
	}
	return 0
}

func checkLen(name string, bz []byte, want int) error {
	if len(bz) != want {
		return fmt.Errorf("%w: %s expected(%d) bytes, got(%d)", types.ErrInvalidAccountData, name, want, len(bz))
	}
	return nil
}
