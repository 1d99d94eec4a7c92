package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DeliveryStatus says what actually happened to an email. The webhook
// endpoints always answer success, so this is the only record of whether a
// message went out or was dropped.
type DeliveryStatus string

const (
	StatusDelivered DeliveryStatus = "delivered"
	StatusSkipped   DeliveryStatus = "skipped"
)

// Delivery is the outcome of one notification attempt.
type Delivery struct {
	Status DeliveryStatus
	Reason string // populated when skipped
}

func delivered() Delivery {
	return Delivery{Status: StatusDelivered}
}

func skipped(reason string) Delivery {
	return Delivery{Status: StatusSkipped, Reason: reason}
}

// Email is a rendered outbound message.
type Email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// EmailSender dispatches a rendered email.
type EmailSender interface {
	Send(ctx context.Context, email Email) error
}

// APISender posts messages to an HTTP mail API with a bearer key.
type APISender struct {
	URL    string
	APIKey string
	Client *http.Client
}

func NewAPISender(url, apiKey string) *APISender {
	return &APISender{
		URL:    url,
		APIKey: apiKey,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *APISender) Send(ctx context.Context, email Email) error {
	if s.APIKey == "" {
		return fmt.Errorf("mail API key is not configured")
	}
	payload, err := json.Marshal(email)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("mail API returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
