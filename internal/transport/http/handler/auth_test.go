package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/chicktrack-api/internal/application/auth"
	"github.com/chicktrack-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*auth.LoginResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) VerifyOTPAndLogin(ctx context.Context, req auth.VerifyOTPRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*auth.LoginResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) ResendOTP(ctx context.Context, userID string) (*auth.LoginResult, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.(*auth.LoginResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) SetTwoFA(ctx context.Context, userID string, req domain.TwoFARequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestLogin_ReturnsToken(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, auth.LoginRequest{
		Email: "a@b.com", Password: "secret",
	}).Return(&auth.LoginResult{Token: "jwt-token"}, nil)

	rec := postJSON(NewAuthHandler(svc).Login, "/auth/login",
		`{"email":"a@b.com","password":"secret"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"jwt-token"`)
}

func TestLogin_StepUpChallenge(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, mock.Anything).Return(&auth.LoginResult{
		RequireOTP: true, UserID: "u1", PhoneMasked: "+254*******78", TTLSeconds: 60,
	}, nil)

	rec := postJSON(NewAuthHandler(svc).Login, "/auth/login",
		`{"email":"a@b.com","password":"secret"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"requireOtp":true`)
	assert.Contains(t, body, `"userId":"u1"`)
	assert.Contains(t, body, `"phoneMasked":"+254*******78"`)
	assert.NotContains(t, body, `"token"`)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, auth.ErrInvalidCredentials)

	rec := postJSON(NewAuthHandler(svc).Login, "/auth/login",
		`{"email":"a@b.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")
}

func TestLogin_MissingFields(t *testing.T) {
	rec := postJSON(NewAuthHandler(new(mockAuthService)).Login, "/auth/login",
		`{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_OTPSendFailure(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, auth.ErrOTPSendFailed)

	rec := postJSON(NewAuthHandler(svc).Login, "/auth/login",
		`{"email":"a@b.com","password":"secret"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestVerifyOTP_OK(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("VerifyOTPAndLogin", mock.Anything, auth.VerifyOTPRequest{
		UserID: "u1", Code: "123456",
	}).Return(&auth.LoginResult{Token: "jwt-token"}, nil)

	rec := postJSON(NewAuthHandler(svc).VerifyOTP, "/auth/verify-otp",
		`{"userId":"u1","code":"123456"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jwt-token")
}

func TestVerifyOTP_Invalid(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("VerifyOTPAndLogin", mock.Anything, mock.Anything).Return(nil, auth.ErrInvalidOTP)

	rec := postJSON(NewAuthHandler(svc).VerifyOTP, "/auth/verify-otp",
		`{"userId":"u1","code":"000000"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired code")
}

func TestVerifyOTP_UnknownUser(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("VerifyOTPAndLogin", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	rec := postJSON(NewAuthHandler(svc).VerifyOTP, "/auth/verify-otp",
		`{"userId":"missing","code":"123456"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegister_Created(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Register", mock.Anything, mock.Anything).
		Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)

	rec := postJSON(NewAuthHandler(svc).Register, "/auth/register",
		`{"name":"A","email":"a@b.com","password":"longpassword"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, auth.ErrEmailTaken)

	rec := postJSON(NewAuthHandler(svc).Register, "/auth/register",
		`{"name":"A","email":"a@b.com","password":"longpassword"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_ShortPassword(t *testing.T) {
	rec := postJSON(NewAuthHandler(new(mockAuthService)).Register, "/auth/register",
		`{"name":"A","email":"a@b.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResendOTP_OK(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("ResendOTP", mock.Anything, "u1").Return(&auth.LoginResult{
		RequireOTP: true, UserID: "u1", PhoneMasked: "+254*******78", Provider: "briq",
	}, nil)

	rec := postJSON(NewAuthHandler(svc).ResendOTP, "/auth/resend-otp",
		`{"userId":"u1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"resent":true`)
	assert.Contains(t, rec.Body.String(), `"provider":"briq"`)
}

func TestResendOTP_StoredPhoneBroken(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("ResendOTP", mock.Anything, "u1").Return(nil, auth.ErrTwoFAPhoneInvalid)

	rec := postJSON(NewAuthHandler(svc).ResendOTP, "/auth/resend-otp",
		`{"userId":"u1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
