package config

import "os"

// Environment variables carrying the GitHub App credentials. The key may
// be supplied inline (PEM) or as a file path; inline wins when both are
// set. Values are never logged or echoed in errors.
const (
	EnvAppID          = "MERGEGATE_APP_ID"
	EnvPrivateKey     = "MERGEGATE_PRIVATE_KEY"
	EnvPrivateKeyFile = "MERGEGATE_PRIVATE_KEY_FILE"
)

// Credentials are the GitHub App credentials handed to the token broker
type Credentials struct {
	AppID      string
	PrivateKey []byte
}

// LoadCredentials reads App credentials from the environment
func LoadCredentials() (Credentials, error) {
	appID := os.Getenv(EnvAppID)
	if appID == "" {
		return Credentials{}, &ConfigError{Field: EnvAppID, Reason: "not set"}
	}

	if pem := os.Getenv(EnvPrivateKey); pem != "" {
		return Credentials{AppID: appID, PrivateKey: []byte(pem)}, nil
	}

	path := os.Getenv(EnvPrivateKeyFile)
	if path == "" {
		return Credentials{}, &ConfigError{
			Field:  EnvPrivateKey,
			Reason: "neither " + EnvPrivateKey + " nor " + EnvPrivateKeyFile + " is set",
		}
	}
	key, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, &ConfigError{Field: EnvPrivateKeyFile, Reason: "unreadable key file"}
	}
	return Credentials{AppID: appID, PrivateKey: key}, nil
}
