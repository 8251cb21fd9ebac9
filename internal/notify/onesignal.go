package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const oneSignalEndpoint = "https://onesignal.com/api/v1/notifications"

// OneSignalSender pushes to a single device through the OneSignal REST API.
type OneSignalSender struct {
	appID    string
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewOneSignalSender(appID, apiKey string) *OneSignalSender {
	return &OneSignalSender{
		appID:    appID,
		apiKey:   apiKey,
		endpoint: oneSignalEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type oneSignalRequest struct {
	AppID            string            `json:"app_id"`
	IncludePlayerIDs []string          `json:"include_player_ids"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
}

func (s *OneSignalSender) Send(ctx context.Context, msg Message) error {
	if msg.PushID == "" {
		return errors.New("onesignal: recipient has no push id")
	}

	payload, err := json.Marshal(oneSignalRequest{
		AppID:            s.appID,
		IncludePlayerIDs: []string{msg.PushID},
		Headings:         map[string]string{"en": msg.Subject},
		Contents:         map[string]string{"en": msg.Body},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Basic "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("onesignal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("onesignal: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return nil
}
