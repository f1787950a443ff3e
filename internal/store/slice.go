package store

import pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// AsyncSlice pairs a fetched value with its request lifecycle. The seq field holds
// the sequence number of the latest issuance; resolutions carrying any other
// sequence number are stale.
type AsyncSlice[T any] struct {
	Value     T              `json:"value"`
	Status    Status         `json:"status"`
	Error     string         `json:"error,omitempty"`
	ErrorCode pkgerrors.Code `json:"error_code,omitempty"`
	seq       uint64
}

func (a AsyncSlice[T]) Loading() bool {
	return a.Status == StatusLoading
}

func (a AsyncSlice[T]) Failed() bool {
	return a.Status == StatusFailed
}

// NotFound reports a failed lookup that found nothing, as opposed to a network failure.
func (a AsyncSlice[T]) NotFound() bool {
	return a.Status == StatusFailed && a.ErrorCode == pkgerrors.CodeNotFound
}

// Seq returns the sequence number of the latest issuance (0 if never issued).
func (a AsyncSlice[T]) Seq() uint64 {
	return a.seq
}

func (a AsyncSlice[T]) issued(seq uint64) AsyncSlice[T] {
	a.seq = seq
	a.Status = StatusLoading
	a.Error = ""
	a.ErrorCode = ""
	return a
}

func (a AsyncSlice[T]) succeeded(value T) AsyncSlice[T] {
	a.Value = value
	a.Status = StatusSucceeded
	a.Error = ""
	a.ErrorCode = ""
	return a
}

func (a AsyncSlice[T]) failed(message string, code pkgerrors.Code) AsyncSlice[T] {
	a.Status = StatusFailed
	a.Error = message
	a.ErrorCode = code
	return a
}
