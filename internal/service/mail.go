package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"socialtrackr/internal/logger"
	"socialtrackr/internal/model"
)

// MailService relays milestone emails to the Resend HTTP API. Without a
// configured API key the send is skipped and reported as success, so a
// dev setup never fails on the email path.
type MailService struct {
	baseURL string
	apiKey  string
	from    string
	client  *http.Client
}

func NewMailService(baseURL, apiKey, from string) *MailService {
	return &MailService{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SendMilestone sends the streak milestone email. The returned bool
// reports whether the send was skipped for lack of configuration.
func (s *MailService) SendMilestone(ctx context.Context, email, name string, streak int) (bool, error) {
	if s.apiKey == "" {
		logger.Warn("mail key not set, skipping milestone email", "to", email, "streak", streak)
		return true, nil
	}

	body := map[string]interface{}{
		"from":    s.from,
		"to":      []string{email},
		"subject": fmt.Sprintf("🔥 You're on Fire! %d-Day Streak Milestone", streak),
		"html":    milestoneHTML(name, streak),
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, model.NewNetworkError("email send failed: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return false, model.NewNetworkError(fmt.Sprintf("email provider status %d: %s", resp.StatusCode, data))
	}
	return false, nil
}

func milestoneHTML(name string, streak int) string {
	return fmt.Sprintf(`
<div style="font-family: sans-serif; padding: 20px; color: #0F172A;">
  <h1 style="color: #6C5CE7;">Amazing work, %s!</h1>
  <p>You've just hit a <strong>%d-day streak</strong> on SocialTrackr.</p>
  <p>Consistency is the key to growth. Keep showing up and the results will follow.</p>
  <div style="margin-top: 30px; padding: 20px; background: #F7F8FC; border-radius: 12px;">
    <p style="margin: 0; font-weight: bold;">Current Goal: Awareness</p>
    <p style="margin: 5px 0 0 0; color: #64748B;">Next milestone: %d days</p>
  </div>
  <p style="margin-top: 30px; font-size: 12px; color: #94A3B8;">
    SocialTrackr · AI Growth OS
  </p>
</div>`, name, streak, streak+3)
}
