package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"interpreter-booking/internal/config"
	"interpreter-booking/internal/domain/ports/adapter"
)

var _ adapter.Mailer = (*HTTPMailer)(nil)

// HTTPMailer sends template emails through the transactional mail API.
// Bodies render server-side from the template name and payload.
type HTTPMailer struct {
	baseURL   string
	apiKey    string
	fromEmail string
	fromName  string
	client    *http.Client
}

func NewHTTPMailer(cfg config.MailConfig) *HTTPMailer {
	return &HTTPMailer{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		client:    &http.Client{},
	}
}

type sendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (m *HTTPMailer) Send(ctx context.Context, toEmail, toName, subject string, template adapter.MailTemplate, payload map[string]any) error {
	requestData := map[string]any{
		"from_email": m.fromEmail,
		"from_name":  m.fromName,
		"to_email":   toEmail,
		"to_name":    toName,
		"subject":    subject,
		"template":   string(template),
		"variables":  payload,
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", m.baseURL+"/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode >= 300 {
		var r sendResponse
		_ = json.Unmarshal(body, &r)
		return fmt.Errorf("mail api error: status %d, message: %s", resp.StatusCode, r.Message)
	}
	return nil
}
