// Package entity holds the contracts shared by every persisted record of the
// catalog: the identity capability, business outcomes and search predicates.
package entity

import "moviestore/errs"

// ErrNotFound is returned by repository writes addressing a missing row.
var ErrNotFound = errs.Errorf(errs.ENOTFOUND, "entity: not found")

// Entity is implemented by every record whose identity is assigned by the store.
type Entity interface {
	GetID() int
}

// Reason tags the outcome of a service operation whose rejection is an
// expected business result rather than an error.
type Reason int

const (
	Ok Reason = iota
	Duplicate
	NotFound
	Blocked
)

func (r Reason) String() string {
	switch r {
	case Ok:
		return "ok"
	case Duplicate:
		return "duplicate"
	case NotFound:
		return "not_found"
	case Blocked:
		return "blocked"
	}
	return "unknown"
}

// Result carries a value together with the reason it was or was not produced.
// Value is only meaningful when Reason is Ok.
type Result[T any] struct {
	Value  T
	Reason Reason
}

func (r Result[T]) Ok() bool {
	return r.Reason == Ok
}

func Success[T any](v T) Result[T] {
	return Result[T]{Value: v, Reason: Ok}
}

func Rejected[T any](reason Reason) Result[T] {
	return Result[T]{Reason: reason}
}
