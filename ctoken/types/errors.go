package types

import "errors"

var (
	// ErrInvalidInstruction is returned for a missing or unknown tag, or an
	// undersized fixed-size instruction field.
	ErrInvalidInstruction = errors.New("invalid instruction")

	// ErrInvalidPayload wraps a structured-binary decode failure of a proof payload.
	ErrInvalidPayload = errors.New("invalid instruction payload")

	// ErrInvalidAccountData is returned when a stored record does not have its
	// canonical length or does not decode.
	ErrInvalidAccountData = errors.New("invalid account data")

	ErrKeyLength = errors.New("bytes does not match pubkey size")
)
