package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"contratobot/core/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	sheetsapi "google.golang.org/api/sheets/v4"

	"log/slog"
)

// LoadOAuthConfig reads an installed-app client secret file and builds the
// OAuth configuration with read-only spreadsheet access.
func LoadOAuthConfig(clientSecretFile string) (*oauth2.Config, error) {
	b, err := os.ReadFile(clientSecretFile)
	if err != nil {
		return nil, fmt.Errorf("sheets: read client secret: %w", err)
	}
	cfg, err := google.ConfigFromJSON(b, sheetsapi.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("sheets: parse client secret: %w", err)
	}
	return cfg, nil
}

// LoadToken reads a previously granted OAuth token from disk. There is no
// interactive consent flow here: the token file must be provisioned by the
// operator before startup.
func LoadToken(tokenFile string) (*oauth2.Token, error) {
	f, err := os.Open(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("sheets: open token file: %w", err)
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("sheets: decode token file: %w", err)
	}
	return tok, nil
}

// SaveToken writes the token back to disk with owner-only permissions.
func SaveToken(tokenFile string, tok *oauth2.Token) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("sheets: encode token: %w", err)
	}
	if err := os.WriteFile(tokenFile, data, 0o600); err != nil {
		return fmt.Errorf("sheets: write token file: %w", err)
	}
	return nil
}

// persistingTokenSource wraps a refreshing TokenSource and writes the token
// back to its file whenever a refresh produced new credentials, so restarts
// keep working after the original access token expired.
type persistingTokenSource struct {
	src  oauth2.TokenSource
	path string

	mu   sync.Mutex
	last *oauth2.Token
}

func newPersistingTokenSource(src oauth2.TokenSource, path string, initial *oauth2.Token) *persistingTokenSource {
	return &persistingTokenSource{src: src, path: path, last: initial}
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last != nil &&
		p.last.AccessToken == tok.AccessToken &&
		p.last.RefreshToken == tok.RefreshToken &&
		p.last.Expiry.Equal(tok.Expiry) {
		return tok, nil
	}
	// A failed write must not fail the request: the refreshed token still
	// serves this process, it just won't survive a restart.
	if err := SaveToken(p.path, tok); err != nil {
		logger.Warn(context.Background(), "sheets", "token.persist_failed",
			slog.String("err", err.Error()),
		)
	}
	p.last = tok
	return tok, nil
}
