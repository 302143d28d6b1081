package database

// Config holds the Postgres connection settings for the persistent
// authorization store. Decoding from YAML and env happens in core/config;
// bootstrap hands this package a converted copy.
type Config struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConnections int
}
