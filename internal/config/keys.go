package config

import "strings"

// Environment variables that override the credentials in the config file.
const (
	KeyEnv   = "TRELLO_KEY"
	TokenEnv = "TRELLO_TOKEN"
)

// MaskSecret returns a masked version of a key or token for logs.
// Shows the last 4 characters of secrets longer than 8 characters.
func MaskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}

	if len(secret) <= 8 {
		return "****"
	}

	return strings.Repeat("*", 4) + secret[len(secret)-4:]
}
