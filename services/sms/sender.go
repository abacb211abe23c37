package sms

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sender delivers a verification code to a phone number. Implementations
// own their transport; callers only learn whether delivery was attempted.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// GatewaySender posts verify-lookup requests to an SMS gateway.
type GatewaySender struct {
	BaseURL  string
	APIKey   string
	Template string
	client   *http.Client
}

// NewGatewaySender builds a sender for the configured gateway endpoint.
func NewGatewaySender(baseURL, apiKey, template string) *GatewaySender {
	if template == "" {
		template = "verify"
	}
	return &GatewaySender{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		Template: template,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send performs one delivery attempt. A non-2xx status is returned as an
// error so the dispatcher can decide on a retry.
func (g *GatewaySender) Send(ctx context.Context, phone, code string) error {
	endpoint := fmt.Sprintf("%s/%s/verify/lookup.json", strings.TrimRight(g.BaseURL, "/"), g.APIKey)

	form := url.Values{}
	form.Set("receptor", phone)
	form.Set("template", g.Template)
	form.Set("token", code)
	form.Set("type", "sms")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// LogSender writes codes to the process log instead of sending them.
// Used in development and tests.
type LogSender struct{}

func (LogSender) Send(_ context.Context, phone, code string) error {
	log.Printf("sms: verification code for %s: %s", phone, code)
	return nil
}
