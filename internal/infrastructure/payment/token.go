package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Token errors.
var (
	ErrInvalidToken  = errors.New("invalid payment token")
	ErrExpiredToken  = errors.New("payment token has expired")
	ErrTokenMismatch = errors.New("payment token does not match booking")
)

// Config holds the signing material for payment confirmation tokens.
type Config struct {
	TokenSecret string
	TokenTTL    time.Duration
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return errors.New("payment token secret is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("payment token TTL must be positive")
	}
	return nil
}

// Token is a decoded, verified payment confirmation token.
type Token struct {
	BookingID uuid.UUID
	UserID    uuid.UUID
	Amount    decimal.Decimal
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies HMAC-signed payment confirmation tokens.
// A token binds a specific booking, payer, and amount to the payment page,
// so the confirmation endpoint cannot be replayed against another booking
// or with a different amount.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service from configuration.
func NewTokenService(cfg *Config) (*TokenService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &TokenService{
		secret: []byte(cfg.TokenSecret),
		ttl:    cfg.TokenTTL,
	}, nil
}

// Issue creates a signed token for the given booking, payer, and amount.
func (s *TokenService) Issue(bookingID, userID uuid.UUID, amount decimal.Decimal) string {
	return s.issueAt(bookingID, userID, amount, time.Now())
}

func (s *TokenService) issueAt(bookingID, userID uuid.UUID, amount decimal.Decimal, now time.Time) string {
	payload := encodePayload(bookingID, userID, amount, now, now.Add(s.ttl))
	sig := s.sign(payload)
	return payload + "." + sig
}

// Verify checks the token signature and expiry and returns the decoded token.
func (s *TokenService) Verify(token string) (*Token, error) {
	return s.verifyAt(token, time.Now())
}

func (s *TokenService) verifyAt(token string, now time.Time) (*Token, error) {
	idx := strings.LastIndex(token, ".")
	if idx < 0 {
		return nil, ErrInvalidToken
	}
	payload, sig := token[:idx], token[idx+1:]

	expected := s.sign(payload)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return nil, ErrInvalidToken
	}

	decoded, err := decodePayload(payload)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if now.After(decoded.ExpiresAt) {
		return nil, ErrExpiredToken
	}
	return decoded, nil
}

// VerifyForBooking verifies the token and checks it was issued for the
// given booking and payer.
func (s *TokenService) VerifyForBooking(token string, bookingID, userID uuid.UUID) (*Token, error) {
	decoded, err := s.Verify(token)
	if err != nil {
		return nil, err
	}
	if decoded.BookingID != bookingID || decoded.UserID != userID {
		return nil, ErrTokenMismatch
	}
	return decoded, nil
}

func (s *TokenService) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func encodePayload(bookingID, userID uuid.UUID, amount decimal.Decimal, issuedAt, expiresAt time.Time) string {
	raw := fmt.Sprintf("%s|%s|%s|%d|%d",
		bookingID.String(),
		userID.String(),
		amount.String(),
		issuedAt.Unix(),
		expiresAt.Unix(),
	)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodePayload(payload string) (*Token, error) {
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(string(raw), "|")
	if len(parts) != 5 {
		return nil, ErrInvalidToken
	}

	bookingID, err := uuid.Parse(parts[0])
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(parts[2])
	if err != nil {
		return nil, err
	}
	issuedAt, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return nil, err
	}
	expiresAt, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil {
		return nil, err
	}

	return &Token{
		BookingID: bookingID,
		UserID:    userID,
		Amount:    amount,
		IssuedAt:  time.Unix(issuedAt, 0),
		ExpiresAt: time.Unix(expiresAt, 0),
	}, nil
}
