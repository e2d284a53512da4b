package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "linguacart.db", cfg.Orders.Path)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "auto", cfg.UI.Theme)
	require.Empty(t, cfg.Catalog.PrimaryPath)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
catalog:
  primary_path: /data/catalog.json
  tabular_path: /data/books.csv
orders:
  path: /data/orders.db
logging:
  level: debug
ui:
  theme: light
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/data/catalog.json", cfg.Catalog.PrimaryPath)
	require.Equal(t, "/data/books.csv", cfg.Catalog.TabularPath)
	require.Equal(t, "/data/orders.db", cfg.Orders.Path)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "light", cfg.UI.Theme)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  primary_path: from-file.json\n"), 0o644))

	t.Setenv("LINGUACART_CATALOG", "from-env.json")
	t.Setenv("LINGUACART_BOOKS_CSV", "from-env.csv")
	t.Setenv("LINGUACART_ORDERS_DB", "from-env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-env.json", cfg.Catalog.PrimaryPath)
	require.Equal(t, "from-env.csv", cfg.Catalog.TabularPath)
	require.Equal(t, "from-env.db", cfg.Orders.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default_ok", func(c *Config) {}, ""},
		{"bad_level", func(c *Config) { c.Logging.Level = "loud" }, "unknown logging level"},
		{"bad_theme", func(c *Config) { c.UI.Theme = "solarized" }, "unknown ui theme"},
		{"orders_path_required", func(c *Config) { c.Orders.Path = "" }, "orders path is required"},
		{"orders_disabled_no_path", func(c *Config) { c.Orders.Path = ""; c.Orders.Disabled = true }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
