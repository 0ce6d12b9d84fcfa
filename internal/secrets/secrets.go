package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"jobfinder-engine/internal/config"
)

const (
	// “Service” groups this app’s secrets in the OS keychain.
	KeyringService = "jobfinder"

	providerAccount = "jobfinder:rapidapi"

	// Env fallback for headless setups without a keychain.
	providerEnv = "RAPIDAPI_KEY"
	smtpEnv     = "SMTP_PASSWORD"
)

func GetProviderKey() (string, error) {
	if key, err := keyring.Get(KeyringService, providerAccount); err == nil && strings.TrimSpace(key) != "" {
		return key, nil
	}
	if key := strings.TrimSpace(os.Getenv(providerEnv)); key != "" {
		return key, nil
	}
	return "", errors.New("provider API key not found (set it in keychain or via RAPIDAPI_KEY)")
}

func SetProviderKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(KeyringService, providerAccount, key)
}

func DeleteProviderKey() error {
	return keyring.Delete(KeyringService, providerAccount)
}

func GetSMTPPassword(cfg config.Config) (string, error) {
	account := smtpKeyringAccount(cfg)
	if pw, err := keyring.Get(KeyringService, account); err == nil && strings.TrimSpace(pw) != "" {
		return pw, nil
	}
	if pw := strings.TrimSpace(os.Getenv(smtpEnv)); pw != "" {
		return pw, nil
	}
	return "", errors.New("SMTP password not found (set it in keychain or via SMTP_PASSWORD)")
}

func SetSMTPPassword(cfg config.Config, password string) error {
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, smtpKeyringAccount(cfg), password)
}

func smtpKeyringAccount(cfg config.Config) string {
	user := cfg.Digest.Username
	if user == "" {
		user = cfg.Digest.From
	}
	return fmt.Sprintf("jobfinder:smtp:%s@%s", user, cfg.Digest.SMTPHost)
}
