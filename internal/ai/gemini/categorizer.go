package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tomasalvarez/cronista/internal/ai"
	"github.com/tomasalvarez/cronista/internal/changelog"
	"github.com/tomasalvarez/cronista/internal/config"
	domainErrors "github.com/tomasalvarez/cronista/internal/errors"
	"github.com/tomasalvarez/cronista/internal/logger"
	"github.com/tomasalvarez/cronista/internal/models"
	"google.golang.org/genai"
)

var _ ai.ChangeCategorizer = (*Categorizer)(nil)

// Categorizer asks Gemini to classify commits into changelog categories.
type Categorizer struct {
	client *genai.Client
	model  string
}

type changeJSON struct {
	Description string   `json:"description"`
	Commits     []string `json:"commits"`
}

type changeSetJSON struct {
	Added      []changeJSON `json:"added"`
	Changed    []changeJSON `json:"changed"`
	Deprecated []changeJSON `json:"deprecated"`
	Removed    []changeJSON `json:"removed"`
	Fixed      []changeJSON `json:"fixed"`
	Security   []changeJSON `json:"security"`
}

func NewCategorizer(ctx context.Context, cfg *config.Config) (*Categorizer, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, domainErrors.ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}

	return &Categorizer{client: client, model: cfg.Model}, nil
}

func (c *Categorizer) Categorize(ctx context.Context, commits []models.Commit) (changelog.ChangeSet, error) {
	log := logger.FromContext(ctx)

	prompt, err := ai.BuildCategorizePrompt(commits)
	if err != nil {
		return nil, err
	}

	log.Debug("sending commits to gemini",
		"model", c.model,
		"commits", len(commits))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), generateConfig())
	if err != nil {
		return nil, fmt.Errorf("error generating categorization: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, domainErrors.ErrAIResponse
	}

	var content strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		content.WriteString(part.Text)
	}

	changes, err := parseChangeSet(content.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrAIResponse, err)
	}

	log.Debug("commits categorized",
		"added", len(changes[changelog.Added]),
		"changed", len(changes[changelog.Changed]),
		"fixed", len(changes[changelog.Fixed]))

	return changes, nil
}

// parseChangeSet decodes the model's JSON answer, tolerating markdown fences
// the model sometimes wraps it in despite instructions.
func parseChangeSet(content string) (changelog.ChangeSet, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var payload changeSetJSON
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("error parsing categorization JSON: %w", err)
	}

	changes := changelog.ChangeSet{}
	attach := func(cat changelog.Category, items []changeJSON) {
		for _, item := range items {
			if strings.TrimSpace(item.Description) == "" {
				continue
			}
			changes[cat] = append(changes[cat], changelog.Change{
				Description: strings.TrimSpace(item.Description),
				Commits:     item.Commits,
			})
		}
	}

	attach(changelog.Added, payload.Added)
	attach(changelog.Changed, payload.Changed)
	attach(changelog.Deprecated, payload.Deprecated)
	attach(changelog.Removed, payload.Removed)
	attach(changelog.Fixed, payload.Fixed)
	attach(changelog.Security, payload.Security)

	return changes, nil
}

func generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      float32Ptr(0.2),
		MaxOutputTokens:  int32(8192),
		ResponseMIMEType: "application/json",
	}
}

func float32Ptr(f float32) *float32 {
	return &f
}
