package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"socialtrackr/internal/model"
)

// PlannerService is the client for the generative content service. It is
// used for bulk monthly plan generation and for ad-hoc chat replies, both
// single request/response calls against an OpenAI-style chat-completions
// endpoint.
type PlannerService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewPlannerService(baseURL, apiKey, modelName string) *PlannerService {
	return &PlannerService{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   modelName,
		client:  &http.Client{Timeout: 90 * time.Second},
	}
}

func (s *PlannerService) chat(ctx context.Context, system, user string) (string, error) {
	body := map[string]interface{}{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("llm status %d: %s", resp.StatusCode, data)
	}

	data, _ := io.ReadAll(resp.Body)
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices")
	}
	return result.Choices[0].Message.Content, nil
}

// GenerateMonthlyPlan asks for a month of post drafts matching the
// preference set, roughly frequency posts per week spread across the
// month. Entries with dates outside the requested month are discarded;
// an unusable reply fails the whole generation without touching any
// stored calendar state.
func (s *PlannerService) GenerateMonthlyPlan(ctx context.Context, prefs model.Preferences, year, month int) ([]model.Post, error) {
	monthName := time.Month(month).String()
	system := `You are a social media content planner. Reply with a JSON array only, no prose.
Each element: {"date":"YYYY-MM-DD","hook":"...","caption":"...","cta":"...","tags":["..."],"content_type":"..."}.`
	user := fmt.Sprintf(
		"Create a posting plan for %s %d.\nPlatform: %s\nNiche: %s\nContent types: %s\nPosts per week: %d\nSpread the posts evenly across the month and only use the listed content types.",
		monthName, year, prefs.Platform, prefs.Niche, strings.Join(prefs.ContentTypes, ", "), prefs.Frequency,
	)

	reply, err := s.chat(ctx, system, user)
	if err != nil {
		return nil, model.NewGenerationFailedError(err.Error())
	}

	posts, err := parsePlan(reply, prefs.Niche, year, month)
	if err != nil {
		return nil, model.NewGenerationFailedError(err.Error())
	}
	return posts, nil
}

// parsePlan decodes the model reply, tolerating markdown code fences and
// surrounding prose around the JSON array.
func parsePlan(reply, niche string, year, month int) ([]model.Post, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in reply")
	}

	var entries []struct {
		Date        string   `json:"date"`
		Hook        string   `json:"hook"`
		Caption     string   `json:"caption"`
		CTA         string   `json:"cta"`
		Tags        []string `json:"tags"`
		ContentType string   `json:"content_type"`
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), &entries); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}

	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	posts := make([]model.Post, 0, len(entries))
	for _, e := range entries {
		if _, err := time.Parse(dateKeyLayout, e.Date); err != nil {
			continue
		}
		if !strings.HasPrefix(e.Date, prefix) {
			continue
		}
		if e.Hook == "" {
			continue
		}
		posts = append(posts, model.Post{
			Date:        e.Date,
			Hook:        e.Hook,
			Caption:     e.Caption,
			CTA:         e.CTA,
			Tags:        e.Tags,
			ContentType: e.ContentType,
			Niche:       niche,
		})
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("plan contained no usable posts")
	}
	return posts, nil
}

// Chat produces one assistant reply for the in-app helper. The transcript
// lives on the client; the server only passes lightweight user context.
func (s *PlannerService) Chat(ctx context.Context, message string, prefs model.Preferences, stats model.Stats) (string, error) {
	system := fmt.Sprintf(
		"You are SocialTrackr AI, a concise social media growth assistant.\nUser context: platform=%s niche=%s content types=%s posting frequency=%d/week current streak=%d best streak=%d planned=%d done=%d.",
		prefs.Platform, prefs.Niche, strings.Join(prefs.ContentTypes, ", "), prefs.Frequency,
		stats.Streak, stats.BestStreak, stats.Planned, stats.Done,
	)
	reply, err := s.chat(ctx, system, message)
	if err != nil {
		return "", model.NewNetworkError("chat service unavailable: " + err.Error())
	}
	return reply, nil
}

// ChatChips are the suggested prompts shown with an empty transcript,
// personalized to the user's niche.
func ChatChips(niche string) []string {
	if niche == "" {
		niche = "your niche"
	}
	return []string{
		`Improve this hook: "`,
		"Rewrite this caption: ",
		"Give me 15 targeted hashtags for " + niche,
		"Give me 3 content angles for " + niche,
	}
}
