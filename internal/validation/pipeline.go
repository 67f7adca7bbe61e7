// Package validation wraps use-case handlers with declarative request
// validation. On violation it synthesizes a typed failure Result matching the
// handler's response type, so handlers never contain validation code.
package validation

import (
	"context"
	"sync"

	"github.com/codearena/auth-api/internal/domain"
)

// Handler is a use-case entry point: request in, Result-shaped response out.
type Handler[Req any, Res any] func(ctx context.Context, req Req) Res

// failureConstructible is the capability a response type must provide so the
// pipeline can build a typed validation failure without inspecting the
// response shape at runtime. domain.Result[T] implements it for every T,
// which makes any non-Result response type a compile error rather than a
// runtime escape hatch.
type failureConstructible[Res any] interface {
	FromValidationErrors(errs []domain.Error, message string) Res
}

// Violation is a single rule finding.
type Violation struct {
	Field   string
	Message string
}

// Rule inspects a request and returns zero or more violations. Rules must not
// mutate the request.
type Rule[Req any] func(req Req) []Violation

// Validated wraps next with the given rules. Zero rules passes the request
// through untouched. Rules run concurrently and independently; every
// violation is collected, then the first one's message becomes the single
// error of the synthesized failure. next is never invoked on violation.
func Validated[Req any, Res failureConstructible[Res]](next Handler[Req, Res], rules ...Rule[Req]) Handler[Req, Res] {
	return func(ctx context.Context, req Req) Res {
		if len(rules) == 0 {
			return next(ctx, req)
		}
		found := make([][]Violation, len(rules))
		var wg sync.WaitGroup
		for i, rule := range rules {
			wg.Add(1)
			go func(i int, rule Rule[Req]) {
				defer wg.Done()
				found[i] = rule(req)
			}(i, rule)
		}
		wg.Wait()

		var all []Violation
		for _, vs := range found {
			all = append(all, vs...)
		}
		if len(all) == 0 {
			return next(ctx, req)
		}
		var res Res
		return res.FromValidationErrors(
			[]domain.Error{domain.ValidationError(all[0].Message)},
			"Validation failed",
		)
	}
}
