package processor

import "errors"

var (
	ErrNotEnoughAccountKeys = errors.New("not enough account keys")
	ErrIncorrectProgramID   = errors.New("account not owned by the program")
	ErrAccountNotWritable   = errors.New("account not writable")
	ErrMissingSignature     = errors.New("missing required signature")
	ErrAlreadyInitialized   = errors.New("account already initialized")
	ErrUninitializedAccount = errors.New("account not initialized")
	ErrInvalidRentSysvar    = errors.New("invalid rent sysvar")
	ErrMintMismatch         = errors.New("account does not belong to the mint")
	ErrAuthorityMismatch    = errors.New("mint authority does not match")
	ErrSupplyOverflow       = errors.New("mint supply overflows")
	ErrSelfTransfer         = errors.New("source and destination are the same account")
)
