package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
		Auth:     AuthConfig{AllowedNames: []string{"Raphael", " mariana "}},
		Sheets:   SheetsConfig{SpreadsheetID: "sheet-id"},
		Gemini:   GeminiConfig{APIKey: "key"},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}
	if cfg.Auth.Store != StoreMemory {
		t.Errorf("store = %q, want %q", cfg.Auth.Store, StoreMemory)
	}
	if cfg.Sheets.ReadRange != "Página1!A1:D28" {
		t.Errorf("read range = %q", cfg.Sheets.ReadRange)
	}
	if cfg.Gemini.Model != "gemini-1.5-pro-latest" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
}

func TestNormalizeLowercasesNames(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	want := []string{"raphael", "mariana"}
	for i, name := range want {
		if cfg.Auth.AllowedNames[i] != name {
			t.Errorf("allowed_names[%d] = %q, want %q", i, cfg.Auth.AllowedNames[i], name)
		}
	}
}

func TestNormalizeRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing token", func(c *Config) { c.Telegram.Token = "" }, "telegram token"},
		{"no names", func(c *Config) { c.Auth.AllowedNames = nil }, "allowed_names"},
		{"bad store", func(c *Config) { c.Auth.Store = "redis" }, "auth.store"},
		{"postgres without db", func(c *Config) { c.Auth.Store = "postgres" }, "database.host"},
		{"missing spreadsheet", func(c *Config) { c.Sheets.SpreadsheetID = "" }, "spreadsheet_id"},
		{"missing api key", func(c *Config) { c.Gemini.APIKey = "" }, "api_key"},
		{"bad run mode", func(c *Config) { c.Telegram.RunMode = "carrier-pigeon" }, "run_mode"},
		{"webhook without url", func(c *Config) { c.Telegram.RunMode = "webhook" }, "webhook.url"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := Normalize(cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestNormalizePostgresStore(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Store = "Postgres"
	cfg.Database = DatabaseConfig{Host: "localhost", Name: "contratos"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Auth.Store != StorePostgres {
		t.Errorf("store = %q, want %q", cfg.Auth.Store, StorePostgres)
	}
}

func TestNormalizeRunModeAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "Polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}
}
