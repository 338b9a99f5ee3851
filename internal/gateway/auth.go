package gateway

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	envAuthURL    = "SEGCTL_AUTH_URL"
	envAuthID     = "SEGCTL_AUTH_ID"
	envAuthSecret = "SEGCTL_AUTH_SECRET"
)

// ResolveToken decides which credential the gateway requests carry. An
// explicitly provided token wins; otherwise, if an auth endpoint is
// configured in the environment, a client-credentials exchange is performed.
// With neither, requests go out unauthenticated.
func ResolveToken(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	authURL := os.Getenv(envAuthURL)
	if authURL == "" {
		return "", nil
	}
	clientID := os.Getenv(envAuthID)
	clientSecret := os.Getenv(envAuthSecret)
	if clientID == "" || clientSecret == "" {
		return "", errors.New(envAuthURL + " is set but " + envAuthID + " or " + envAuthSecret + " is missing")
	}
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     authURL,
	}
	token, err := cfg.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("unable to fetch auth token: %v", err)
	}
	return token.AccessToken, nil
}
