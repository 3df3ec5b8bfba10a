package sms

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// sendAfricasTalking posts the message to the Africa's Talking bulk
// messaging API (form-encoded, apiKey header). The sender ID is optional
// and omitted in sandbox mode.
func (g *gateway) sendAfricasTalking(ctx context.Context, to []string, message string) (*SendResult, error) {
	form := url.Values{}
	form.Set("username", g.cfg.ATUsername)
	form.Set("to", strings.Join(to, ","))
	form.Set("message", message)
	if g.cfg.ATSenderID != "" {
		form.Set("from", g.cfg.ATSenderID)
	}
	encoded := form.Encode()
	endpoint := strings.TrimRight(g.cfg.ATBaseURL, "/") + "/version1/messaging"

	resp, err := g.doWithRetry(func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("apiKey", g.cfg.ATAPIKey)
		return req, nil
	})
	if err != nil {
		return nil, &ProviderError{Provider: "africastalking", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProviderError{Provider: "africastalking", Status: resp.StatusCode, Body: string(body)}
	}

	var data map[string]interface{}
	_ = json.Unmarshal(body, &data)
	return &SendResult{Provider: "africastalking", Data: data}, nil
}
