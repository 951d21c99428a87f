package parallel

import "errors"

// Sentinel errors for package parallel.
var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrUnknownOp       = errors.New("unknown operation")
	ErrWorkerFailed    = errors.New("worker failed")
	ErrMissingArtifact = errors.New("worker produced no artifact")
	ErrDuplicateName   = errors.New("duplicate entry name")
)
