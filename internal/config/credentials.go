package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingCredentials reports that the API key or secret variable is empty.
var ErrMissingCredentials = errors.New("exchange credentials missing")

// Credentials are the exchange API key pair. They never live in the YAML config.
type Credentials struct {
	APIKey    string
	APISecret string
}

// LoadCredentials loads e.EnvFile into the process environment when it exists, then
// reads the key pair from the configured variable names. Variables already set in the
// environment win over the file.
func LoadCredentials(e ExchangeConfig) (Credentials, error) {
	if path := strings.TrimSpace(e.EnvFile); path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Credentials{}, fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	creds := Credentials{
		APIKey:    strings.TrimSpace(os.Getenv(e.APIKeyEnv)),
		APISecret: strings.TrimSpace(os.Getenv(e.APISecretEnv)),
	}
	var missing []string
	if creds.APIKey == "" {
		missing = append(missing, e.APIKeyEnv)
	}
	if creds.APISecret == "" {
		missing = append(missing, e.APISecretEnv)
	}
	if len(missing) > 0 {
		return creds, fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return creds, nil
}
