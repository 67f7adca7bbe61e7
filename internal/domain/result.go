package domain

import "encoding/json"

// Result is the typed success/failure envelope every use case returns.
// A success carries a value and a message; a failure carries a non-empty
// ordered error list and no value. The two states are mutually exclusive
// and enforced at construction: building a failure with no errors (or with
// ErrNone) panics immediately rather than producing a corrupt value.
type Result[T any] struct {
	value        T
	message      string
	errors       []Error
	succeeded    bool
	isValidation bool
}

// Success builds a success Result carrying value and a human message.
func Success[T any](value T, message string) Result[T] {
	return Result[T]{value: value, message: message, succeeded: true}
}

// Failure builds a failure Result carrying exactly one error.
func Failure[T any](err Error, message string) Result[T] {
	if err == ErrNone {
		panic("domain: failure Result requires a non-empty error")
	}
	return Result[T]{message: message, errors: []Error{err}}
}

// ValidationFailure builds a failure tagged as a validation outcome so the
// transport layer can distinguish it from business failures if it wants to.
func ValidationFailure[T any](errs []Error, message string) Result[T] {
	if len(errs) == 0 {
		panic("domain: validation failure requires at least one error")
	}
	for _, e := range errs {
		if e == ErrNone {
			panic("domain: validation failure must not contain the empty error")
		}
	}
	return Result[T]{message: message, errors: errs, isValidation: true}
}

// FromValidationErrors satisfies the validation pipeline's failure-construction
// capability. The receiver is only used to fix the type parameter.
func (Result[T]) FromValidationErrors(errs []Error, message string) Result[T] {
	return ValidationFailure[T](errs, message)
}

func (r Result[T]) IsSuccess() bool    { return r.succeeded }
func (r Result[T]) IsFailure() bool    { return !r.succeeded }
func (r Result[T]) IsValidation() bool { return r.isValidation }
func (r Result[T]) Message() string    { return r.message }
func (r Result[T]) Value() T           { return r.value }
func (r Result[T]) Errors() []Error    { return r.errors }

// FirstError returns the leading error of a failure, or ErrNone for a success.
func (r Result[T]) FirstError() Error {
	if len(r.errors) == 0 {
		return ErrNone
	}
	return r.errors[0]
}

// envelope is the wire shape. errors is always present (possibly empty) and
// errorCount is derived, so the two can never disagree.
type envelope[T any] struct {
	Data       *T      `json:"data"`
	Message    string  `json:"message"`
	ErrorCount int     `json:"errorCount"`
	Errors     []Error `json:"errors"`
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	env := envelope[T]{
		Message:    r.message,
		ErrorCount: len(r.errors),
		Errors:     r.errors,
	}
	if env.Errors == nil {
		env.Errors = []Error{}
	}
	if r.succeeded {
		v := r.value
		env.Data = &v
	}
	return json.Marshal(env)
}
