// Package result provides a generic success-or-failure value.
//
// A Result is handy when outcomes travel through channels or get collected
// from several goroutines, where the usual (value, error) pair cannot be sent
// as one value.
package result

import "errors"

// Result holds a Value OR an Err. The zero Result is a success carrying the
// zero value of T.
type Result[T any] struct {
	Value T
	Err   error
}

func Ok[T any](v T) Result[T] { return Result[T]{Value: v} }

// Err builds a failure. A nil error is replaced by a generic one so the
// failure variant never looks like a success.
func Err[T any](e error) Result[T] {
	if e == nil {
		e = errors.New("unknown failure")
	}
	return Result[T]{Err: e}
}

// Errorf builds a failure from a bare message.
func Errorf[T any](msg string) Result[T] { return Err[T](errors.New(msg)) }

// From turns a (value, error) pair into a Result.
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

func (r Result[T]) IsOk() bool { return r.Err == nil }

// Get unpacks the Result back into the idiomatic (value, error) pair.
func (r Result[T]) Get() (T, error) { return r.Value, r.Err }

// Message is the failure message, or "" for a success.
func (r Result[T]) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func (r Result[T]) Unwrap() T {
	if r.Err != nil {
		panic(r.Err)
	}
	return r.Value
}

// Map applies f to a success value. Failures pass through untouched.
// Methods cannot introduce type parameters, so this is a top-level function.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.Err != nil {
		return Result[U]{Err: r.Err}
	}
	return Ok(f(r.Value))
}

// Then chains a step that can itself fail.
func Then[T, U any](r Result[T], f func(T) (U, error)) Result[U] {
	if r.Err != nil {
		return Result[U]{Err: r.Err}
	}
	return From(f(r.Value))
}
