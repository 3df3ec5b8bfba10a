// Package sms sends text messages through the configured provider.
// Briq is the preferred provider and is used whenever its API key is set;
// Africa's Talking is the fallback, used only when Briq is entirely
// unconfigured. Provider errors are normalized into ProviderError so callers
// never deal with vendor-specific failure shapes.
package sms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chicktrack-api/internal/config"
	"github.com/chicktrack-api/internal/domain"
)

// ErrUnconfigured is returned when neither provider has credentials.
var ErrUnconfigured = errors.New("no SMS provider configured")

// ProviderError is a normalized send failure. Status and Body are set for
// HTTP-level failures; Err is set for network-level ones.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s send failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s HTTP %d: %s", e.Provider, e.Status, e.Body)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// SendResult reports which provider accepted the message.
type SendResult struct {
	Provider  string                 `json:"provider"`
	Simulated bool                   `json:"simulated,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Gateway sends SMS messages.
type Gateway interface {
	Send(ctx context.Context, to []string, message string) (*SendResult, error)
}

type gateway struct {
	cfg    *config.Config
	client *http.Client
}

// NewGateway builds a Gateway from the application configuration.
// The per-call timeout defaults to 10s when SMS_TIMEOUT_MS is unset.
func NewGateway(cfg *config.Config) Gateway {
	timeout := time.Duration(cfg.SMSTimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &gateway{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (g *gateway) Send(ctx context.Context, to []string, message string) (*SendResult, error) {
	if len(to) == 0 {
		return nil, fmt.Errorf("no recipients: %w", domain.ErrBadRequest)
	}
	if g.cfg.BriqAPIKey != "" {
		return g.sendBriq(ctx, to, message)
	}
	if g.cfg.ATAPIKey != "" {
		return g.sendAfricasTalking(ctx, to, message)
	}
	return nil, ErrUnconfigured
}

// doWithRetry issues the request built by build, retrying once on a
// network-level failure. HTTP-level failures (any response received) are
// never retried.
func (g *gateway) doWithRetry(build func() (*http.Request, error)) (*http.Response, error) {
	req, err := build()
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err == nil {
		return resp, nil
	}
	req, buildErr := build()
	if buildErr != nil {
		return nil, err
	}
	return g.client.Do(req)
}
