package categorizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
	"github.com/clearledgr/clearledgr-ap/internal/parsererror"
)

// GeminiStrategy asks a Gemini model to pick an account when keyword
// matching draws a blank. Only active when insights are enabled in
// configuration.
type GeminiStrategy struct {
	model    *genai.GenerativeModel
	accounts []string
	logger   logging.Logger
}

// NewGeminiStrategy creates the client up front so a bad key fails at
// construction, not mid-pipeline.
func NewGeminiStrategy(ctx context.Context, apiKey, modelName string, accounts []models.AccountConfig, logger logging.Logger) (*GeminiStrategy, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	names := make([]string, 0, len(accounts))
	for _, a := range accounts {
		names = append(names, a.Name)
	}
	if len(names) == 0 {
		for _, a := range defaultAccounts {
			names = append(names, a.Name)
		}
	}

	return &GeminiStrategy{
		model:    client.GenerativeModel(modelName),
		accounts: names,
		logger:   logger,
	}, nil
}

// Name returns the name of this strategy for logging and debugging.
func (s *GeminiStrategy) Name() string {
	return "Gemini"
}

// Categorize prompts the model with the document fields and the allowed
// account names, then parses the "Category:" line out of the response.
func (s *GeminiStrategy) Categorize(ctx context.Context, doc Document) (models.Category, bool, error) {
	prompt := fmt.Sprintf(`Categorize the following financial document:
Vendor: %s
Subject: %s
Amount: %s

Assign it to exactly one of the following accounts:
%s

Respond in this format:
Category: [Selected Account Name]
Description: [Brief explanation]`,
		doc.Vendor, doc.Subject, doc.Amount, strings.Join(s.accounts, ", "))

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.Category{}, false, &parsererror.CollaboratorError{Service: "gemini", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return models.Category{}, false, &parsererror.CollaboratorError{
			Service: "gemini", Err: fmt.Errorf("empty response"),
		}
	}

	name, description := parseCategoryResponse(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if name == "" || !s.allowed(name) {
		return models.Category{}, false, nil
	}

	s.logger.Debug("Model suggested account",
		logging.Field{Key: "strategy", Value: s.Name()},
		logging.Field{Key: "account", Value: name})
	return models.Category{Name: name, Description: description}, true, nil
}

func (s *GeminiStrategy) allowed(name string) bool {
	for _, a := range s.accounts {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// parseCategoryResponse extracts the category and description lines from the
// model's structured reply.
func parseCategoryResponse(response string) (string, string) {
	var name, description string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Category:"):
			name = strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "Category:")), "[]")
		case strings.HasPrefix(line, "Description:"):
			description = strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "Description:")), "[]")
		}
	}
	return name, description
}
