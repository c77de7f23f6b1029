package models

// Category is a general-ledger-style category suggested for a document.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryUncategorized is the fallback category name when no strategy found
// a match.
const CategoryUncategorized = "Uncategorized"

// AccountConfig is one entry of the configurable account list the advisor
// matches against.
type AccountConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// AccountsConfig is the structure of the accounts YAML file.
type AccountsConfig struct {
	Accounts []AccountConfig `yaml:"accounts"`
}
