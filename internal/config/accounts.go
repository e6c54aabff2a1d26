package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// accountsFile is the on-disk shape of an account-list file:
//
//	accounts:
//	  - "100200300"
//	  - "100200301"
type accountsFile struct {
	Accounts []string `yaml:"accounts"`
}

// LoadAccounts reads a YAML account-list file and returns the account numbers
// in file order, with surrounding whitespace trimmed and blank entries dropped.
func LoadAccounts(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	var f accountsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse accounts file %s: %w", path, err)
	}

	accounts := make([]string, 0, len(f.Accounts))
	for _, a := range f.Accounts {
		a = strings.TrimSpace(a)
		if a != "" {
			accounts = append(accounts, a)
		}
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("accounts file %s lists no accounts", path)
	}
	return accounts, nil
}
