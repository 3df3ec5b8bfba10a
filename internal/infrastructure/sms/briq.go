package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

type briqRequest struct {
	To      []string `json:"to"`
	Message string   `json:"message"`
	From    string   `json:"from,omitempty"`
}

// sendBriq posts the message to the Briq REST API. When SMS_FAKE is set the
// call is short-circuited: the intended send is logged and reported as
// successful without touching the network. Simulation applies to Briq only.
func (g *gateway) sendBriq(ctx context.Context, to []string, message string) (*SendResult, error) {
	if g.cfg.SMSFake {
		slog.Info("briq send simulated", "to", to, "from", g.cfg.BriqSenderID, "message", message)
		return &SendResult{Provider: "briq", Simulated: true}, nil
	}

	payload, err := json.Marshal(briqRequest{To: to, Message: message, From: g.cfg.BriqSenderID})
	if err != nil {
		return nil, err
	}
	url := strings.TrimRight(g.cfg.BriqBaseURL, "/") + "/sms/send"

	resp, err := g.doWithRetry(func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+g.cfg.BriqAPIKey)
		return req, nil
	})
	if err != nil {
		return nil, &ProviderError{Provider: "briq", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProviderError{Provider: "briq", Status: resp.StatusCode, Body: string(body)}
	}

	var data map[string]interface{}
	_ = json.Unmarshal(body, &data) // response body is informational only
	return &SendResult{Provider: "briq", Data: data}, nil
}
