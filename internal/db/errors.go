package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound       = errors.New("db: key not found")
	ErrUnknownCollection = errors.New("db: unknown collection")
	ErrUnknownField      = errors.New("db: unknown field")
)

// Op constants name the failing command for error context.
const (
	OpHSet     = "HSET"
	OpHGetAll  = "HGETALL"
	OpDel      = "DEL"
	OpExists   = "EXISTS"
	OpSAdd     = "SADD"
	OpSRem     = "SREM"
	OpSMembers = "SMEMBERS"
	OpInsert   = "INSERT"
	OpSelect   = "SELECT"
	OpDelete   = "DELETE"
	OpBegin    = "BEGIN"
	OpCommit   = "COMMIT"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
