// Package gemini is a stateless adapter for the description helper: it builds
// one instruction prompt from event fields, issues a single generateContent
// call, and flattens the first candidate back into plain text.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrEmptyInput is returned when the description is blank; no call is made.
var ErrEmptyInput = errors.New("description is empty")

// ErrNoCandidates is returned when the service responds with zero candidates.
var ErrNoCandidates = errors.New("no candidates returned")

// ErrEmptyOutput is returned when the first candidate flattens to blank text.
var ErrEmptyOutput = errors.New("empty text returned")

type Client struct {
	// BaseURL is swappable for tests.
	BaseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		// A description rewrite blocks the form; fail rather than hang.
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Input carries the event fields embedded in the prompt.
type Input struct {
	Title       string
	Club        string
	Venue       string
	Time        string
	Description string
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Prompt builds the deterministic instruction sent to the model.
func Prompt(in Input) string {
	return fmt.Sprintf(`Improve the following college event description.
Make it professional, clear, and engaging.
Do NOT add options or bullet points.
Return ONLY the improved description text.

Event Title: %s
Organized by: %s
Venue: %s
Time: %s

Original Description:
%s
`, in.Title, in.Club, in.Venue, in.Time, in.Description)
}

// Improve rewrites the event description. Single attempt, no retries; the
// caller decides whether to offer one.
func (c *Client) Improve(ctx context.Context, in Input) (string, error) {
	if strings.TrimSpace(in.Description) == "" {
		return "", ErrEmptyInput
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: Prompt(in)}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call generation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation service returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(out.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	// Concatenate every part of the first candidate, in order.
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	improved := strings.TrimSpace(sb.String())
	if improved == "" {
		return "", ErrEmptyOutput
	}
	return improved, nil
}
