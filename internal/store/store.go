// Package store loads the configurable account list the categorization
// advisor matches against.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/clearledgr/clearledgr-ap/internal/logging"
	"github.com/clearledgr/clearledgr-ap/internal/models"
)

// AccountStore resolves and loads the accounts YAML file.
type AccountStore struct {
	File   string
	logger logging.Logger
}

// NewAccountStore creates a store for the given file name. An empty name
// falls back to "accounts.yaml".
func NewAccountStore(file string, logger logging.Logger) *AccountStore {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &AccountStore{File: file, logger: logger}
}

// findFile looks for the accounts file in standard locations.
func (s *AccountStore) findFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "clearledgr-ap", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadAccounts loads the account list. A missing file yields an empty list,
// not an error; the advisor then degrades to its built-in patterns.
func (s *AccountStore) LoadAccounts() ([]models.AccountConfig, error) {
	filename := s.File
	if filename == "" {
		filename = "accounts.yaml"
	}

	filePath, err := s.findFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Accounts file not found",
				logging.Field{Key: "file", Value: filename})
			return []models.AccountConfig{}, nil
		}
		return nil, fmt.Errorf("error resolving accounts file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading accounts file: %w", err)
	}

	// Preferred structure: "accounts: [...]".
	var accountsConfig models.AccountsConfig
	if err := yaml.Unmarshal(data, &accountsConfig); err == nil && len(accountsConfig.Accounts) > 0 {
		s.logger.Debug("Loaded accounts",
			logging.Field{Key: logging.FieldCount, Value: len(accountsConfig.Accounts)},
			logging.Field{Key: "file", Value: filePath})
		return accountsConfig.Accounts, nil
	}

	// Fallback: a bare top-level array.
	var accounts []models.AccountConfig
	if err := yaml.Unmarshal(data, &accounts); err == nil && len(accounts) > 0 {
		s.logger.Debug("Loaded accounts from bare array",
			logging.Field{Key: logging.FieldCount, Value: len(accounts)},
			logging.Field{Key: "file", Value: filePath})
		return accounts, nil
	}

	return nil, fmt.Errorf("error parsing accounts file %s", filePath)
}
