package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// An explicitly named file that does not exist is an error.
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	// An empty file yields pure defaults.
	cfg, err := loadFromDir(t, "")
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.True(t, cfg.Database.IsEmbedded())
	require.Equal(t, "./data/starterkit.db", cfg.Database.Path)
	require.False(t, cfg.Redis.Enabled)
	require.Equal(t, "session", cfg.Session.CookieName)
	require.Zero(t, cfg.Session.MaxAge)
	require.Equal(t, "zh_CN", cfg.I18n.DefaultLocale)
	require.Equal(t, "info", cfg.Logging.Level)
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := loadFromDir(t, `
server:
  port: 9001
database:
  driver: postgres
  host: db.internal
  user: app
  password: secret
  database: starterkit
session:
  secret: file-secret
i18n:
  default_locale: en
`)
	require.NoError(t, err)

	require.Equal(t, 9001, cfg.Server.Port)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.False(t, cfg.Database.IsEmbedded())
	require.Contains(t, cfg.Database.DSN(), "host=db.internal")
	require.Contains(t, cfg.Database.DSN(), "dbname=starterkit")
	require.Equal(t, "file-secret", cfg.Session.Secret)
	require.Equal(t, "en", cfg.I18n.DefaultLocale)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "bad driver",
			mutate:  func(c *Config) { c.Database.Driver = "mysql" },
			wantErr: "database.driver",
		},
		{
			name: "postgres requires host",
			mutate: func(c *Config) {
				c.Database.Driver = "postgres"
				c.Database.Host = ""
			},
			wantErr: "database.host",
		},
		{
			name: "sqlite requires path",
			mutate: func(c *Config) {
				c.Database.Path = ""
			},
			wantErr: "database.path",
		},
		{
			name:    "missing session secret",
			mutate:  func(c *Config) { c.Session.Secret = "" },
			wantErr: "session.secret",
		},
		{
			name:    "unsupported default locale",
			mutate:  func(c *Config) { c.I18n.DefaultLocale = "fr" },
			wantErr: "i18n.default_locale",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadFromDir(t, "")
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("STARTERKIT_SERVER_PORT", "9999")
	t.Setenv("STARTERKIT_I18N_DEFAULT_LOCALE", "en")

	cfg, err := loadFromDir(t, "")
	require.NoError(t, err)

	require.Equal(t, 9999, cfg.Server.Port)
	require.Equal(t, "en", cfg.I18n.DefaultLocale)
}

// loadFromDir writes the given YAML (possibly empty) to a config file in a
// temp dir and loads it, keeping tests independent of the working directory.
func loadFromDir(t *testing.T, yaml string) (*Config, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return Load(path)
}
