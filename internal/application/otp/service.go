// Package otp issues and verifies phone-bound one-time passcodes.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/chicktrack-api/internal/domain"
	"github.com/chicktrack-api/internal/infrastructure/sms"
	"github.com/chicktrack-api/internal/pkg/phone"
)

// Typed failures callers discriminate on. Handlers collapse the last three
// into one generic client message so verification leaks nothing about which
// case occurred.
var (
	ErrInvalidPhone   = errors.New("invalid phone format")
	ErrDispatchFailed = errors.New("OTP dispatch failed")
	ErrNoPendingCode  = errors.New("no pending code")
	ErrCodeExpired    = errors.New("code expired")
	ErrCodeMismatch   = errors.New("code mismatch")
)

const defaultMessage = "Your ChickTrack verification code is %s"

// Store is the persistence the service needs: at most one live code per
// phone, replaced atomically on Put.
type Store interface {
	Put(ctx context.Context, phone, code string, ttl time.Duration) (*domain.OtpCode, error)
	Get(ctx context.Context, phone string) (*domain.OtpCode, error)
	Consume(ctx context.Context, phone string) error
}

// IssueResult reports the TTL actually used and which provider accepted the
// message.
type IssueResult struct {
	TTLSeconds int
	Provider   string
}

type Service interface {
	Issue(ctx context.Context, rawPhone string) (*IssueResult, error)
	Verify(ctx context.Context, rawPhone, submittedCode string) error
}

type service struct {
	store    Store
	gateway  sms.Gateway
	ttl      time.Duration
	template string
}

// NewService wires the issuance/verification service. template is honored
// only when it contains the "{code}" placeholder; otherwise the default
// message text is used. ttl falls back to 60s when non-positive.
func NewService(store Store, gateway sms.Gateway, ttl time.Duration, template string) Service {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &service{store: store, gateway: gateway, ttl: ttl, template: template}
}

func (s *service) Issue(ctx context.Context, rawPhone string) (*IssueResult, error) {
	p, ok := phone.Canonical(rawPhone)
	if !ok {
		return nil, ErrInvalidPhone
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	// The row is written before dispatch so a slow or failed send never
	// holds storage hostage; a stored-but-undelivered code simply ages out.
	if _, err := s.store.Put(ctx, p, code, s.ttl); err != nil {
		return nil, fmt.Errorf("store otp code: %w", err)
	}

	result, err := s.gateway.Send(ctx, []string{p}, s.renderMessage(code))
	if err != nil {
		slog.Error("OTP dispatch failed", "phone", phone.Mask(p), "err", err)
		return nil, fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}

	return &IssueResult{
		TTLSeconds: int(s.ttl / time.Second),
		Provider:   result.Provider,
	}, nil
}

func (s *service) Verify(ctx context.Context, rawPhone, submittedCode string) error {
	p, ok := phone.Canonical(rawPhone)
	if !ok {
		return ErrInvalidPhone
	}

	rec, err := s.store.Get(ctx, p)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrNoPendingCode
		}
		return err
	}

	if time.Now().Unix() > rec.ExpiresAt {
		if err := s.store.Consume(ctx, p); err != nil {
			slog.Warn("failed to delete expired OTP row", "phone", phone.Mask(p), "err", err)
		}
		return ErrCodeExpired
	}

	// Exact string comparison: leading-zero codes must never be coerced
	// to numbers. A mismatch leaves the row in place so the caller may
	// retry until expiry.
	if strings.TrimSpace(submittedCode) != rec.Code {
		return ErrCodeMismatch
	}

	// One-time use.
	if err := s.store.Consume(ctx, p); err != nil {
		return fmt.Errorf("consume otp code: %w", err)
	}
	return nil
}

// renderMessage substitutes the code into the configured template, or the
// default text when no usable template is set.
func (s *service) renderMessage(code string) string {
	if strings.Contains(s.template, "{code}") {
		return strings.ReplaceAll(s.template, "{code}", code)
	}
	return fmt.Sprintf(defaultMessage, code)
}

// generateCode draws a uniformly random 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
