package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const bearerScheme = "Bearer"

// Claims is the token payload: {"subject_id": ..., "exp": ...}.
type Claims struct {
	SubjectID string `json:"subject_id"`
	jwt.RegisteredClaims
}

// Service issues and validates HS512 tokens. The key and TTL are fixed at
// construction, so a Service is safe for concurrent use.
type Service struct {
	key    []byte
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for both issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLeeway(d time.Duration) Option {
	return func(s *Service) { s.leeway = d }
}

func New(key []byte, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		key: append([]byte(nil), key...),
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) TTL() time.Duration { return s.ttl }

// Issue returns a signed token binding subjectID, expiring ttl from now.
func (s *Service) Issue(subjectID string) (string, error) {
	claims := Claims{
		SubjectID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate accepts a raw token, optionally prefixed with "Bearer", and
// returns its claims. Failures wrap ErrExpired, ErrInvalid or are *OtherError.
func (s *Service) Validate(raw string) (*Claims, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), bearerScheme))

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		// Lenient base64 would accept other encodings of the last signature byte.
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	if claims.SubjectID == "" {
		return nil, &OtherError{Msg: "token has no subject"}
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	default:
		return &OtherError{Msg: "validate token", Err: err}
	}
}
