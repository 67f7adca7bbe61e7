package validation

import (
	"context"
	"testing"

	"github.com/codearena/auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testReq struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,strongpwd"`
}

func okHandler(called *bool) Handler[testReq, domain.Result[string]] {
	return func(ctx context.Context, req testReq) domain.Result[string] {
		*called = true
		return domain.Success("handled", "ok")
	}
}

func TestValidated_ZeroRules_PassesThrough(t *testing.T) {
	var called bool
	h := Validated(okHandler(&called))

	res := h(context.Background(), testReq{})
	assert.True(t, called)
	assert.True(t, res.IsSuccess())
}

func TestValidated_NoViolations_InvokesHandler(t *testing.T) {
	var called bool
	h := Validated(okHandler(&called), Struct[testReq]())

	res := h(context.Background(), testReq{Email: "a@b.com", Password: "Aa1!aa"})
	assert.True(t, called)
	assert.True(t, res.IsSuccess())
}

func TestValidated_Violation_ShortCircuits(t *testing.T) {
	var called bool
	h := Validated(okHandler(&called), Struct[testReq]())

	// Password missing a digit: handler must never run.
	res := h(context.Background(), testReq{Email: "a@b.com", Password: "Aaaa!aaa"})

	assert.False(t, called, "handler must not be invoked on violation")
	require.True(t, res.IsFailure())
	assert.True(t, res.IsValidation())
	require.Len(t, res.Errors(), 1, "failure carries exactly one error item")
	assert.Equal(t, "Validation.Error", res.FirstError().Code)
}

func TestValidated_CollectsAcrossRules_FirstMessageWins(t *testing.T) {
	first := func(req testReq) []Violation {
		return []Violation{{Field: "Email", Message: "first message"}}
	}
	second := func(req testReq) []Violation {
		return []Violation{{Field: "Password", Message: "second message"}}
	}

	var called bool
	h := Validated(okHandler(&called), Rule[testReq](first), Rule[testReq](second))

	res := h(context.Background(), testReq{})
	assert.False(t, called)
	require.Len(t, res.Errors(), 1)
	assert.Equal(t, "first message", res.FirstError().Description)
}

func TestStructRule_PasswordPolicy(t *testing.T) {
	rule := Struct[testReq]()

	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all classes present", "Aa1!aa", true},
		{"too short", "Aa1!a", false},
		{"missing digit", "Aaaa!aaa", false},
		{"missing upper", "aa1!aaaa", false},
		{"missing lower", "AA1!AAAA", false},
		{"missing special", "Aa1aaaaa", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			violations := rule(testReq{Email: "a@b.com", Password: tc.password})
			if tc.valid {
				assert.Empty(t, violations)
			} else {
				assert.NotEmpty(t, violations)
			}
		})
	}
}

func TestStructRule_EmailShape(t *testing.T) {
	rule := Struct[testReq]()

	assert.NotEmpty(t, rule(testReq{Email: "not-an-email", Password: "Aa1!aa"}))
	assert.NotEmpty(t, rule(testReq{Email: "", Password: "Aa1!aa"}))
	assert.Empty(t, rule(testReq{Email: "user@example.com", Password: "Aa1!aa"}))
}
