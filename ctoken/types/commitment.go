package types

const CommitmentLen = 32

// Commitment hides an account balance. It is opaque to the codec and the
// state layout: it is only ever copied in or out as a whole.
// The all-zero value stands for the empty balance.
type Commitment [CommitmentLen]byte

func (c Commitment) IsZero() bool {
	return c == Commitment{}
}

// MintEffect is what a verified mint payload attests.
type MintEffect struct {
	// Comm is the new commitment of the destination account.
	Comm Commitment
	// Amount is the plaintext increase of the mint supply.
	Amount uint64
}

// TransferEffect holds the attested commitments after a transfer.
type TransferEffect struct {
	Src Commitment
	Dst Commitment
}
