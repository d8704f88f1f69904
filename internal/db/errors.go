package db

import "errors"

// Sentinel errors for persistence operations.
var (
	ErrNoRows = errors.New("db: no rows")
)

// Op constants name gateway operations for error context.
const (
	OpSelect    = "SELECT"
	OpGet       = "GET"
	OpPing      = "PING"
	OpBuild     = "BUILD"
	OpZIncrBy   = "ZINCRBY"
	OpZRevRange = "ZREVRANGE"
	OpMGet      = "MGET"
	OpSet       = "SET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
