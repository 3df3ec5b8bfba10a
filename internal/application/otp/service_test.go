package otp

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/chicktrack-api/internal/domain"
	"github.com/chicktrack-api/internal/infrastructure/sms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store with the same replace-on-put semantics as
// the DynamoDB repo.
type fakeStore struct {
	rows map[string]*domain.OtpCode
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]*domain.OtpCode)}
}

func (f *fakeStore) Put(_ context.Context, phone, code string, ttl time.Duration) (*domain.OtpCode, error) {
	rec := &domain.OtpCode{Phone: phone, Code: code, ExpiresAt: time.Now().Add(ttl).Unix()}
	f.rows[phone] = rec
	return rec, nil
}

func (f *fakeStore) Get(_ context.Context, phone string) (*domain.OtpCode, error) {
	rec, ok := f.rows[phone]
	if !ok {
		return nil, fmt.Errorf("no pending code: %w", domain.ErrNotFound)
	}
	return rec, nil
}

func (f *fakeStore) Consume(_ context.Context, phone string) error {
	delete(f.rows, phone)
	return nil
}

// fakeGateway records sends and returns a canned result or error.
type fakeGateway struct {
	sends    [][]string
	messages []string
	result   *sms.SendResult
	err      error
}

func (f *fakeGateway) Send(_ context.Context, to []string, message string) (*sms.SendResult, error) {
	f.sends = append(f.sends, to)
	f.messages = append(f.messages, message)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

const testPhone = "+254712345678"

func newTestService(store Store, gw sms.Gateway) Service {
	return NewService(store, gw, 60*time.Second, "")
}

func TestIssue_InvalidPhone(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeGateway{})
	for _, p := range []string{"1234567", "+0123456789", "+123", ""} {
		_, err := svc.Issue(context.Background(), p)
		assert.ErrorIs(t, err, ErrInvalidPhone, "phone %q", p)
	}
}

func TestIssue_StoresSixDigitCodeAndSends(t *testing.T) {
	store := newFakeStore()
	gw := &fakeGateway{result: &sms.SendResult{Provider: "briq"}}
	svc := newTestService(store, gw)

	res, err := svc.Issue(context.Background(), testPhone)
	require.NoError(t, err)
	assert.Equal(t, 60, res.TTLSeconds)
	assert.Equal(t, "briq", res.Provider)

	rec := store.rows[testPhone]
	require.NotNil(t, rec)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), rec.Code)
	assert.InDelta(t, time.Now().Add(60*time.Second).Unix(), rec.ExpiresAt, 2)

	require.Len(t, gw.sends, 1)
	assert.Equal(t, []string{testPhone}, gw.sends[0])
	assert.Contains(t, gw.messages[0], rec.Code)
}

func TestIssue_DefaultMessageText(t *testing.T) {
	store := newFakeStore()
	gw := &fakeGateway{result: &sms.SendResult{Provider: "briq"}}
	svc := newTestService(store, gw)

	_, err := svc.Issue(context.Background(), testPhone)
	require.NoError(t, err)
	assert.Contains(t, gw.messages[0], "ChickTrack verification code")
}

func TestIssue_TemplateWithPlaceholder(t *testing.T) {
	store := newFakeStore()
	gw := &fakeGateway{result: &sms.SendResult{Provider: "briq"}}
	svc := NewService(store, gw, 60*time.Second, "Login code: {code}. Expires soon.")

	_, err := svc.Issue(context.Background(), testPhone)
	require.NoError(t, err)
	assert.Equal(t, "Login code: "+store.rows[testPhone].Code+". Expires soon.", gw.messages[0])
}

func TestIssue_TemplateWithoutPlaceholderIgnored(t *testing.T) {
	store := newFakeStore()
	gw := &fakeGateway{result: &sms.SendResult{Provider: "briq"}}
	svc := NewService(store, gw, 60*time.Second, "static text with no placeholder")

	_, err := svc.Issue(context.Background(), testPhone)
	require.NoError(t, err)
	assert.Contains(t, gw.messages[0], store.rows[testPhone].Code)
}

func TestIssue_DispatchFailureKeepsStoredRow(t *testing.T) {
	store := newFakeStore()
	gw := &fakeGateway{err: &sms.ProviderError{Provider: "briq", Status: 500, Body: "boom"}}
	svc := newTestService(store, gw)

	_, err := svc.Issue(context.Background(), testPhone)
	require.ErrorIs(t, err, ErrDispatchFailed)

	var pe *sms.ProviderError
	assert.ErrorAs(t, err, &pe)

	// The row stays put; cleanup is natural expiry, not rollback.
	assert.NotNil(t, store.rows[testPhone])
}

func TestIssue_ReissueReplacesPriorCode(t *testing.T) {
	store := newFakeStore()
	gw := &fakeGateway{result: &sms.SendResult{Provider: "briq"}}
	svc := newTestService(store, gw)

	_, err := svc.Issue(context.Background(), testPhone)
	require.NoError(t, err)
	first := store.rows[testPhone].Code

	_, err = svc.Issue(context.Background(), testPhone)
	require.NoError(t, err)
	second := store.rows[testPhone].Code

	// Verifying with the first code after reissue must never succeed.
	err = svc.Verify(context.Background(), testPhone, first)
	if first == second {
		t.Skip("codes collided; replacement indistinguishable")
	}
	assert.ErrorIs(t, err, ErrCodeMismatch)
}

func TestVerify_InvalidPhone(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeGateway{})
	err := svc.Verify(context.Background(), "1234567", "123456")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestVerify_NoPendingCode(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeGateway{})
	err := svc.Verify(context.Background(), testPhone, "123456")
	assert.ErrorIs(t, err, ErrNoPendingCode)
}

func TestVerify_SucceedsExactlyOnce(t *testing.T) {
	store := newFakeStore()
	gw := &fakeGateway{result: &sms.SendResult{Provider: "briq"}}
	svc := newTestService(store, gw)

	_, err := svc.Issue(context.Background(), testPhone)
	require.NoError(t, err)
	code := store.rows[testPhone].Code

	require.NoError(t, svc.Verify(context.Background(), testPhone, code))
	assert.Empty(t, store.rows, "successful verify must consume the row")

	err = svc.Verify(context.Background(), testPhone, code)
	assert.ErrorIs(t, err, ErrNoPendingCode)
}

func TestVerify_TrimsSubmittedCode(t *testing.T) {
	store := newFakeStore()
	store.rows[testPhone] = &domain.OtpCode{
		Phone: testPhone, Code: "042617", ExpiresAt: time.Now().Add(time.Minute).Unix(),
	}
	svc := newTestService(store, &fakeGateway{})

	require.NoError(t, svc.Verify(context.Background(), testPhone, "  042617 "))
}

func TestVerify_MismatchLeavesRowForRetry(t *testing.T) {
	store := newFakeStore()
	store.rows[testPhone] = &domain.OtpCode{
		Phone: testPhone, Code: "123456", ExpiresAt: time.Now().Add(time.Minute).Unix(),
	}
	svc := newTestService(store, &fakeGateway{})

	err := svc.Verify(context.Background(), testPhone, "654321")
	assert.ErrorIs(t, err, ErrCodeMismatch)

	// Correct code still works afterwards.
	require.NoError(t, svc.Verify(context.Background(), testPhone, "123456"))
}

func TestVerify_ExpiredCodeConsumed(t *testing.T) {
	store := newFakeStore()
	store.rows[testPhone] = &domain.OtpCode{
		Phone: testPhone, Code: "123456", ExpiresAt: time.Now().Add(-time.Second).Unix(),
	}
	svc := newTestService(store, &fakeGateway{})

	err := svc.Verify(context.Background(), testPhone, "123456")
	assert.ErrorIs(t, err, ErrCodeExpired)

	// The expired row was deleted; a retry reports no pending code.
	err = svc.Verify(context.Background(), testPhone, "123456")
	assert.ErrorIs(t, err, ErrNoPendingCode)
}

func TestVerify_StoreErrorPropagated(t *testing.T) {
	svc := newTestService(errStore{}, &fakeGateway{})
	err := svc.Verify(context.Background(), testPhone, "123456")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoPendingCode))
}

type errStore struct{}

func (errStore) Put(context.Context, string, string, time.Duration) (*domain.OtpCode, error) {
	return nil, errors.New("dynamo down")
}
func (errStore) Get(context.Context, string) (*domain.OtpCode, error) {
	return nil, errors.New("dynamo down")
}
func (errStore) Consume(context.Context, string) error { return errors.New("dynamo down") }

func TestGenerateCode_RangeAndWidth(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}
