package bootstrap

import (
	"testing"

	"github.com/jmoiron/sqlx"

	coreconfig "contratobot/core/config"
	coredatabase "contratobot/core/database"
)

func TestRunSkipsDatabaseForMemoryStore(t *testing.T) {
	connected := false
	res, err := Run(Options{
		Config: &coreconfig.Config{
			Auth: coreconfig.AuthConfig{Store: coreconfig.StoreMemory},
		},
		LoggerInit: func(*coreconfig.Config) error { return nil },
		Connect: func(coredatabase.Config) (*sqlx.DB, error) {
			connected = true
			return nil, nil
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.DB != nil {
		t.Error("memory store produced a database handle")
	}
	if connected {
		t.Error("memory store opened a database connection")
	}
}

func TestRunHandsDatabaseSettingsThrough(t *testing.T) {
	var got coredatabase.Config
	cfg := &coreconfig.Config{
		Auth: coreconfig.AuthConfig{Store: coreconfig.StorePostgres},
		Database: coreconfig.DatabaseConfig{
			Host:           "db.internal",
			Port:           "5433",
			User:           "bot",
			Password:       "secret",
			Name:           "contratos",
			SSLMode:        "require",
			MaxConnections: 4,
		},
	}

	res, err := Run(Options{
		Config:     cfg,
		LoggerInit: func(*coreconfig.Config) error { return nil },
		Connect: func(c coredatabase.Config) (*sqlx.DB, error) {
			got = c
			return sqlx.NewDb(nil, "postgres"), nil
		},
		Migrate: func(coredatabase.Config) error { return nil },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.DB == nil {
		t.Fatal("postgres store returned no database handle")
	}

	want := coredatabase.Config{
		Host:           "db.internal",
		Port:           "5433",
		User:           "bot",
		Password:       "secret",
		Name:           "contratos",
		SSLMode:        "require",
		MaxConnections: 4,
	}
	if got != want {
		t.Errorf("connect received %+v, want %+v", got, want)
	}
}
