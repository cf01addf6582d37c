package models

import "fmt"

// Status explains why a component returned what it did. Components degrade
// to empty values instead of failing; the status tells callers (and tests)
// which kind of emptiness they got.
type Status string

const (
	StatusOK                  Status = "ok"
	StatusUpstreamUnavailable Status = "upstream_unavailable"
	StatusNoData              Status = "no_data"
	StatusInsufficientData    Status = "insufficient_data"
	StatusMissingJoin         Status = "missing_join"
)

// Result tags a component's output with a Status. Value may still hold
// partial data when Status is not ok.
type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

func (r Result[T]) OK() bool {
	return r.Status == StatusOK
}

// Reason is a loggable description of a non-ok result.
func (r Result[T]) Reason() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Status, r.Err)
	}
	return string(r.Status)
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v, Status: StatusOK}
}

func Empty[T any](status Status, err error) Result[T] {
	var zero T
	return Result[T]{Value: zero, Status: status, Err: err}
}
