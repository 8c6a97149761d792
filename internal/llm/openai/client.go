package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"recruit-backend/internal/llm"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := 15 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// AnnotateMatch asks the model for a short gloss on a computed match.
func (c *Client) AnnotateMatch(ctx context.Context, input llm.AnnotateInput) (llm.Annotation, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(input)},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return llm.Annotation{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return llm.Annotation{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return llm.Annotation{}, fmt.Errorf("openai call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.Annotation{}, fmt.Errorf("read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return llm.Annotation{}, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return llm.Annotation{}, fmt.Errorf("openai error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return llm.Annotation{}, fmt.Errorf("openai returned no choices")
	}

	var annotation llm.Annotation
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &annotation); err != nil {
		return llm.Annotation{}, fmt.Errorf("decode annotation: %w", err)
	}
	return annotation, nil
}

const systemPrompt = `You are a recruiting assistant. Given a computed match between a candidate and a job offer, reply with ONLY a JSON object: {"summary": "<one sentence>", "strengths": ["..."], "gaps": ["..."]}. Do not change or re-estimate the scores.`

func buildUserPrompt(input llm.AnnotateInput) string {
	var sb strings.Builder
	sb.WriteString("Candidate: ")
	sb.WriteString(input.CandidateSummary)
	sb.WriteString("\nOffer: ")
	sb.WriteString(input.OfferSummary)
	fmt.Fprintf(&sb, "\nOverall score: %d (%s)\nSubscores:", input.Overall, input.Level)
	for name, score := range input.Subscores {
		fmt.Fprintf(&sb, " %s=%d", name, score)
	}
	return sb.String()
}

var _ llm.Client = (*Client)(nil)
