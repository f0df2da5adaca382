package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"interpreter-booking/internal/config"
	"interpreter-booking/internal/domain/ports/adapter"
)

var _ adapter.PushGateway = (*OneSignalGateway)(nil)

// OneSignalGateway delivers pushes via the OneSignal REST API. Recipients
// are matched on user-id/email tag pairs; deferred delivery maps onto the
// send_after field so scheduling stays on the provider side.
type OneSignalGateway struct {
	baseURL string
	appID   string
	restKey string
	client  *http.Client
}

func NewOneSignalGateway(cfg config.PushConfig) *OneSignalGateway {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://onesignal.com/api/v1"
	}
	return &OneSignalGateway{
		baseURL: baseURL,
		appID:   cfg.AppID,
		restKey: cfg.RestKey,
		client:  &http.Client{},
	}
}

type oneSignalResponse struct {
	ID     string   `json:"id"`
	Errors []string `json:"errors"`
}

func (g *OneSignalGateway) Deliver(ctx context.Context, n adapter.PushNotification) error {
	var filters []map[string]string
	for i, r := range n.Recipients {
		if i > 0 {
			filters = append(filters, map[string]string{"operator": "OR"})
		}
		filters = append(filters, map[string]string{
			"field": "tag", "key": "user_id", "relation": "=", "value": r.UserID,
		})
	}

	requestData := map[string]any{
		"app_id":        g.appID,
		"contents":      n.Contents,
		"data":          pushData(n),
		"filters":       filters,
		"android_sound": n.Sound.Android,
		"ios_sound":     n.Sound.IOS,
	}
	if n.SendAfter != nil {
		requestData["send_after"] = n.SendAfter.Format(time.RFC3339)
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/notifications", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+g.restKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var response oneSignalResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}
	if len(response.Errors) > 0 {
		return fmt.Errorf("onesignal errors: %v", response.Errors)
	}
	return nil
}

func pushData(n adapter.PushNotification) map[string]string {
	data := map[string]string{
		"job_id":            n.JobID,
		"notification_type": string(n.Type),
	}
	for k, v := range n.Data {
		data[k] = v
	}
	return data
}
