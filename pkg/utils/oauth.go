package utils

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/mbergmann/wachplan/internal/config"
)

const (
	tokenDirName   = ".wachplan/tokens"
	tokenFilePerms = 0600
	tokenDirPerms  = 0700
)

// ScopeSheets is the only Google scope the application needs: the
// roster publisher writes to a shared spreadsheet.
const ScopeSheets = "https://www.googleapis.com/auth/spreadsheets"

// GetOAuthConfig creates an OAuth2 config from the OAuth client configuration
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	oauthConfigJSON, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	googleConfig, err := google.ConfigFromJSON(oauthConfigJSON, ScopeSheets)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	// Out-of-band style flow: the user pastes the code back into the CLI.
	googleConfig.RedirectURL = "urn:ietf:wg:oauth:2.0:oob"

	return googleConfig, nil
}

// GetToken returns a valid OAuth token for the given environment. It
// loads a persisted token when one exists and refreshes it if expired;
// otherwise it walks the user through the authorization flow on stdin
// and persists the result.
func GetToken(ctx context.Context, oauthConfig *oauth2.Config, env string) (*oauth2.Token, error) {
	token, err := loadTokenFromFile(env)
	if err == nil {
		if token.Valid() {
			return token, nil
		}

		// Expired but refreshable.
		refreshed, err := oauthConfig.TokenSource(ctx, token).Token()
		if err == nil {
			if saveErr := saveTokenToFile(env, refreshed); saveErr != nil {
				return nil, fmt.Errorf("failed to persist refreshed token: %w", saveErr)
			}
			return refreshed, nil
		}
	}

	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following URL in your browser, authorize the application,\nand paste the code here:\n\n%s\n\nCode: ", authURL)

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	token, err = oauthConfig.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := saveTokenToFile(env, token); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}

	return token, nil
}

func tokenFilePath(env string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, tokenDirName, env+".json"), nil
}

func loadTokenFromFile(env string) (*oauth2.Token, error) {
	path, err := tokenFilePath(env)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &token, nil
}

func saveTokenToFile(env string, token *oauth2.Token) error {
	path, err := tokenFilePath(env)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(path, data, tokenFilePerms); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}
