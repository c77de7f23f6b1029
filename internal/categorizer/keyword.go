package categorizer

import (
	"context"
	"strings"

	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
)

// AccountLoader provides the configurable account list. Satisfied by
// store.AccountStore.
type AccountLoader interface {
	LoadAccounts() ([]models.AccountConfig, error)
}

// defaultAccounts backs the keyword strategy when no accounts file is
// configured.
var defaultAccounts = []models.AccountConfig{
	{Name: "Cloud & Hosting", Keywords: []string{"aws", "amazon web services", "azure", "google cloud", "hosting", "digitalocean", "cloudflare"}},
	{Name: "Software & SaaS", Keywords: []string{"subscription", "license", "saas", "github", "slack", "figma", "atlassian", "notion"}},
	{Name: "Professional Services", Keywords: []string{"consulting", "legal", "accounting", "audit", "advisory"}},
	{Name: "Utilities & Telecom", Keywords: []string{"electricity", "water", "gas", "internet", "mobile", "telecom", "phone"}},
	{Name: "Travel & Transport", Keywords: []string{"airline", "flight", "hotel", "uber", "taxi", "rail", "rental car"}},
	{Name: "Office & Supplies", Keywords: []string{"office", "supplies", "stationery", "furniture", "equipment"}},
	{Name: "Marketing & Advertising", Keywords: []string{"advertising", "marketing", "ads", "campaign", "sponsorship"}},
}

// KeywordStrategy categorizes by keyword affinity between the account list
// and the document's vendor and subject.
type KeywordStrategy struct {
	accounts []models.AccountConfig
	logger   logging.Logger
}

// NewKeywordStrategy loads the account list once at construction. A missing
// or empty list degrades to the built-in defaults.
func NewKeywordStrategy(loader AccountLoader, logger logging.Logger) *KeywordStrategy {
	if logger == nil {
		logger = logging.NewNop()
	}

	accounts := defaultAccounts
	if loader != nil {
		loaded, err := loader.LoadAccounts()
		if err != nil {
			logger.Warn("Failed to load accounts, using built-in defaults",
				logging.Field{Key: logging.FieldReason, Value: err.Error()})
		} else if len(loaded) > 0 {
			accounts = loaded
		}
	}
	return &KeywordStrategy{accounts: accounts, logger: logger}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize matches account keywords against the vendor name and subject,
// case-insensitively. The account with the most keyword hits wins.
func (s *KeywordStrategy) Categorize(_ context.Context, doc Document) (models.Category, bool, error) {
	haystack := strings.ToLower(doc.Vendor + " " + doc.Subject)
	if strings.TrimSpace(haystack) == "" {
		return models.Category{}, false, nil
	}

	bestHits := 0
	var best models.AccountConfig
	for _, account := range s.accounts {
		hits := 0
		for _, keyword := range account.Keywords {
			if strings.Contains(haystack, strings.ToLower(keyword)) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			best = account
		}
	}

	if bestHits == 0 {
		return models.Category{}, false, nil
	}

	s.logger.Debug("Matched account by keyword",
		logging.Field{Key: "strategy", Value: s.Name()},
		logging.Field{Key: "account", Value: best.Name},
		logging.Field{Key: "hits", Value: bestHits})
	return models.Category{Name: best.Name, Description: "keyword affinity"}, true, nil
}
