// Package auth implements registration and the two-step login flow.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chicktrack-api/internal/application/otp"
	"github.com/chicktrack-api/internal/domain"
	"github.com/chicktrack-api/internal/pkg/id"
	"github.com/chicktrack-api/internal/pkg/phone"
	"golang.org/x/crypto/bcrypt"
)

// Login failures are deliberately coarse. Wrong email and wrong password
// collapse into ErrInvalidCredentials; every OTP verification failure
// collapses into ErrInvalidOTP. The precise cause is logged, never returned.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrTwoFAPhoneInvalid  = errors.New("2FA phone missing or invalid")
	ErrOTPSendFailed      = errors.New("could not send OTP")
	ErrEmailTaken         = errors.New("email already registered")
)

// TokenSigner issues the bearer token handed out on successful login.
type TokenSigner interface {
	Sign(userID, email string) (string, error)
}

// UserStore is the slice of the users repository the auth flow needs.
type UserStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyOTPRequest struct {
	UserID string `json:"userId" validate:"required"`
	Code   string `json:"code" validate:"required"`
}

// LoginResult is either a finished login (Token set) or a 2FA step-up
// (RequireOTP set, Token empty). The two are mutually exclusive.
type LoginResult struct {
	Token       string       `json:"token,omitempty"`
	User        *domain.User `json:"user,omitempty"`
	RequireOTP  bool         `json:"requireOtp,omitempty"`
	UserID      string       `json:"userId,omitempty"`
	PhoneMasked string       `json:"phoneMasked,omitempty"`
	TTLSeconds  int          `json:"ttlSeconds,omitempty"`
	Provider    string       `json:"provider,omitempty"`
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	VerifyOTPAndLogin(ctx context.Context, req VerifyOTPRequest) (*LoginResult, error)
	ResendOTP(ctx context.Context, userID string) (*LoginResult, error)
	SetTwoFA(ctx context.Context, userID string, req domain.TwoFARequest) (*domain.User, error)
}

type service struct {
	users  UserStore
	otp    otp.Service
	signer TokenSigner
}

func NewService(users UserStore, otpSvc otp.Service, signer TokenSigner) Service {
	return &service{users: users, otp: otpSvc, signer: signer}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if req.Phone != nil {
		p, ok := phone.Canonical(*req.Phone)
		if !ok {
			return nil, fmt.Errorf("phone must be E.164, e.g. +254712345678: %w", domain.ErrBadRequest)
		}
		req.Phone = &p
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.HasPassword() {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if u.TwoFAEnabled {
		return s.stepUp(ctx, u)
	}
	return s.finishLogin(u)
}

// stepUp sends an OTP to the account phone instead of issuing a token. The
// client gets back the user ID it must echo on verify-otp and resend-otp.
func (s *service) stepUp(ctx context.Context, u *domain.User) (*LoginResult, error) {
	if u.Phone == nil || !phone.Valid(*u.Phone) {
		return nil, ErrTwoFAPhoneInvalid
	}
	res, err := s.otp.Issue(ctx, *u.Phone)
	if err != nil {
		if errors.Is(err, otp.ErrInvalidPhone) {
			return nil, ErrTwoFAPhoneInvalid
		}
		slog.Error("2FA OTP issue failed", "user_id", u.UserID, "err", err)
		return nil, ErrOTPSendFailed
	}
	return &LoginResult{
		RequireOTP:  true,
		UserID:      u.UserID,
		PhoneMasked: phone.Mask(*u.Phone),
		TTLSeconds:  res.TTLSeconds,
		Provider:    res.Provider,
	}, nil
}

func (s *service) VerifyOTPAndLogin(ctx context.Context, req VerifyOTPRequest) (*LoginResult, error) {
	u, err := s.users.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !u.TwoFAEnabled {
		return nil, fmt.Errorf("2FA not enabled for account: %w", domain.ErrBadRequest)
	}
	if u.Phone == nil || !phone.Valid(*u.Phone) {
		return nil, ErrTwoFAPhoneInvalid
	}

	if err := s.otp.Verify(ctx, *u.Phone, req.Code); err != nil {
		switch {
		case errors.Is(err, otp.ErrNoPendingCode),
			errors.Is(err, otp.ErrCodeExpired),
			errors.Is(err, otp.ErrCodeMismatch),
			errors.Is(err, otp.ErrInvalidPhone):
			slog.Info("OTP login rejected", "user_id", u.UserID, "err", err)
			return nil, ErrInvalidOTP
		}
		return nil, err
	}
	return s.finishLogin(u)
}

func (s *service) ResendOTP(ctx context.Context, userID string) (*LoginResult, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.TwoFAEnabled {
		return nil, fmt.Errorf("2FA not enabled for account: %w", domain.ErrBadRequest)
	}
	return s.stepUp(ctx, u)
}

func (s *service) SetTwoFA(ctx context.Context, userID string, req domain.TwoFARequest) (*domain.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"twofa_enabled": req.Enabled}
	if req.Enabled {
		raw := req.Phone
		if raw == nil {
			raw = u.Phone
		}
		if raw == nil {
			return nil, ErrTwoFAPhoneInvalid
		}
		p, ok := phone.Canonical(*raw)
		if !ok {
			return nil, ErrTwoFAPhoneInvalid
		}
		updates["phone"] = p
		u.Phone = &p
	}

	if err := s.users.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	u.TwoFAEnabled = req.Enabled
	u.UpdatedAt = time.Now().UTC()
	return u, nil
}

func (s *service) finishLogin(u *domain.User) (*LoginResult, error) {
	token, err := s.signer.Sign(u.UserID, u.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: u}, nil
}
