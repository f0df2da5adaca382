package sms

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

var _ adapter.SMSGateway = (*HTTPGateway)(nil)

// HTTPGateway sends texts through the SMS provider's REST API.
type HTTPGateway struct {
	baseURL string
	token   string
	sender  string
	client  *http.Client
}

func NewHTTPGateway(cfg config.SMSConfig) *HTTPGateway {
	return &HTTPGateway{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		sender:  cfg.Sender,
		client:  &http.Client{},
	}
}

type sendResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (g *HTTPGateway) Send(ctx context.Context, number, message string) (adapter.SMSDeliveryStatus, error) {
	requestData := map[string]any{
		"from": g.sender,
		"to":   number,
		"text": message,
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return adapter.SMSFailed, fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/sms/send", bytes.NewBuffer(jsonData))
	if err != nil {
		return adapter.SMSFailed, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.client.Do(req)
	if err != nil {
		return adapter.SMSFailed, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return adapter.SMSFailed, fmt.Errorf("failed to read response body: %w", err)
	}

	var response sendResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return adapter.SMSFailed, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}

	switch response.Status {
	case "delivered":
		return adapter.SMSDelivered, nil
	case "queued", "accepted", "":
		return adapter.SMSQueued, nil
	default:
		return adapter.SMSFailed, fmt.Errorf("sms api error: status %s, message: %s", response.Status, response.Message)
	}
}
