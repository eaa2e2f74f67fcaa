// Package guard decides, per request, whether a bearer token authenticates
// the caller. It does no I/O.
package guard

import (
	"strings"

	"github.com/ErlanBelekov/account-service/internal/token"
)

type Status int

const (
	// NotApplicable means no credentials were presented.
	NotApplicable Status = iota
	Authenticated
	Rejected
)

func (s Status) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	default:
		return "not_applicable"
	}
}

// Outcome is the result of evaluating one request. Claims is set only when
// Authenticated; Reason only when Rejected.
type Outcome struct {
	Status Status
	Claims *token.Claims
	Reason error
}

// Kind reports why a Rejected outcome failed.
func (o Outcome) Kind() token.Kind {
	return token.KindOf(o.Reason)
}

type Validator interface {
	Validate(raw string) (*token.Claims, error)
}

type Guard struct {
	tokens Validator
}

func New(tokens Validator) *Guard {
	return &Guard{tokens: tokens}
}

// Evaluate inspects an Authorization header value.
func (g *Guard) Evaluate(header string) Outcome {
	if strings.TrimSpace(header) == "" {
		return Outcome{Status: NotApplicable}
	}

	claims, err := g.tokens.Validate(header)
	if err != nil {
		return Outcome{Status: Rejected, Reason: err}
	}
	return Outcome{Status: Authenticated, Claims: claims}
}
