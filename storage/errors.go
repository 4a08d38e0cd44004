package storage

import "errors"

// Call outcomes surfaced to the submitter. Every state-changing op either
// completes entirely or returns one of these with the transaction rolled
// back.
var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNotFound             = errors.New("not found")

	ErrNotLive          = errors.New("campaign is not live")
	ErrNotYetEndable    = errors.New("campaign is not endable yet")
	ErrAlreadyFinalized = errors.New("campaign already finalized")
	ErrAlreadyFunded    = errors.New("campaign already funded")

	ErrBelowMinimum    = errors.New("below minimum amount")
	ErrExceedsMaxLimit = errors.New("exceeded max amount")
	ErrHardCapExceeded = errors.New("exceeded hard cap")
	ErrNotWhitelisted  = errors.New("you are not whitelisted")
	ErrNotQualified    = errors.New("insufficient qualifying token balance")

	ErrTransferFailed = errors.New("transfer failed")

	ErrNothingToClaim   = errors.New("nothing to claim")
	ErrNotYetUnlockable = errors.New("allocation is not unlockable yet")
	ErrAlreadyReleased  = errors.New("allocation has been released previously")
)
