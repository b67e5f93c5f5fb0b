package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

const (
	// DefaultScore is assigned in bypass mode so records still carry a
	// usable relevance value.
	DefaultScore = 0.8

	// ScoreThreshold is the inclusive minimum relevance for acceptance
	// in full mode.
	ScoreThreshold = 0.55

	// MaxDescriptionChars bounds how much description text is sent to
	// the judgement model.
	MaxDescriptionChars = 2000

	judgeModel = "command-r-08-2024"
)

// Judgement is the structured relevance assessment for one video.
type Judgement struct {
	Summary string   `json:"summary"`
	Bullets []string `json:"bullets"`
	Score   float64  `json:"score"`
}

// Policy decides whether a duration-qualified video enters the archive
// and fills in its judgement fields. Selected once per run.
type Policy interface {
	Judge(ctx context.Context, title, description string) (Judgement, bool, error)
}

// Bypass accepts every video unconditionally with the default score and
// empty summary fields. No external call is made.
type Bypass struct{}

func (Bypass) Judge(ctx context.Context, title, description string) (Judgement, bool, error) {
	return Judgement{Bullets: []string{}, Score: DefaultScore}, true, nil
}

// chatClient is the narrow slice of the Cohere SDK used by Scored, so
// tests can substitute a fake.
type chatClient interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

type cohereChat struct {
	client *cohereclient.Client
}

func (c *cohereChat) Chat(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message:     prompt,
		Model:       cohere.String(judgeModel),
		Preamble:    cohere.String(judgePreamble),
		Temperature: cohere.Float64(0.2),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

const judgePreamble = "You are a technical podcast triage editor. You output strict JSON only, with no extra text."

const judgePrompt = `Assess how relevant this video is to large language models.
Output strict JSON of this exact shape:
{"summary": "summary of at most 120 characters", "bullets": ["3-5 key points, at most 20 characters each"], "score": 0.0}
score is the LLM/large-model relevance in [0,1].

Title: %s
Description: %s`

// Scored asks the judgement model for a strict-JSON assessment and gates
// acceptance on the relevance score. Malformed model output is an error
// for that item, never silently defaulted.
type Scored struct {
	chat chatClient
}

// NewScored creates the full-judgement policy backed by the Cohere Chat API.
func NewScored(apiKey string) *Scored {
	client := cohereclient.NewClient(cohereclient.WithToken(apiKey))
	return &Scored{chat: &cohereChat{client: client}}
}

func (s *Scored) Judge(ctx context.Context, title, description string) (Judgement, bool, error) {
	// Character limit, not bytes: CJK descriptions must not be split
	// mid-rune.
	if runes := []rune(description); len(runes) > MaxDescriptionChars {
		description = string(runes[:MaxDescriptionChars])
	}

	raw, err := s.chat.Chat(ctx, fmt.Sprintf(judgePrompt, title, description))
	if err != nil {
		return Judgement{}, false, fmt.Errorf("judgement call failed: %w", err)
	}

	var j Judgement
	if err := json.Unmarshal([]byte(stripFences(raw)), &j); err != nil {
		return Judgement{}, false, fmt.Errorf("malformed judgement output %q: %w", raw, err)
	}

	if j.Score < 0 || j.Score > 1 {
		return Judgement{}, false, fmt.Errorf("judgement score %.2f outside [0,1] in output %q", j.Score, raw)
	}

	if j.Score < ScoreThreshold {
		return j, false, nil
	}
	return j, true, nil
}

// stripFences removes markdown code fences models sometimes wrap around
// JSON despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
