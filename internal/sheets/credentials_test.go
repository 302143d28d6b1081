package sheets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

type staticSource struct {
	tok *oauth2.Token
}

func (s *staticSource) Token() (*oauth2.Token, error) { return s.tok, nil }

func TestPersistingTokenSourceWritesOnRefresh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token.json")

	initial := &oauth2.Token{
		AccessToken: "old-access",
		Expiry:      time.Now().Add(-time.Hour).UTC(),
	}
	if err := SaveToken(path, initial); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	refreshed := &oauth2.Token{
		AccessToken:  "new-access",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour).UTC(),
	}
	src := newPersistingTokenSource(&staticSource{tok: refreshed}, path, initial)

	got, err := src.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got.AccessToken != "new-access" {
		t.Fatalf("AccessToken = %q, want new-access", got.AccessToken)
	}

	stored, err := LoadToken(path)
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if stored.AccessToken != "new-access" || stored.RefreshToken != "refresh" {
		t.Fatalf("stored token not updated: %+v", stored)
	}
}

func TestPersistingTokenSourceSkipsUnchangedToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token.json")

	tok := &oauth2.Token{AccessToken: "same", Expiry: time.Now().Add(time.Hour).UTC()}
	src := newPersistingTokenSource(&staticSource{tok: tok}, path, tok)

	if _, err := src.Token(); err != nil {
		t.Fatalf("Token: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("token file written even though token did not change")
	}
}

func TestLoadTokenMissingFile(t *testing.T) {
	_, err := LoadToken(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatalf("expected error for missing token file")
	}
}
