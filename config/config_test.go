package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AUTH_MODE", "header")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, int64(5<<20), cfg.Assets.MaxUploadSize)
	assert.Equal(t, "regex", cfg.Render.WrapStrategy)
	assert.Equal(t, "memory", cfg.Render.PreviewStore)
	assert.Equal(t, 30*time.Minute, cfg.Render.PreviewTTL)
	assert.Equal(t, time.Hour, cfg.GitHub.CacheTTL)
	assert.Equal(t, "0 0 3 * * *", cfg.Jobs.AssetJanitorSpec)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AUTH_MODE", "header")
	t.Setenv("PUBLIC_BASE_URL", "https://folio.example/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("PREVIEW_TTL", "5m")
	t.Setenv("PREVIEW_RATE_PER_SEC", "0.5")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("RENDER_WRAP_STRATEGY", "ast")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://folio.example", cfg.Server.PublicBaseURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Render.PreviewTTL)
	assert.Equal(t, 0.5, cfg.Render.PreviewPerUser)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "ast", cfg.Render.WrapStrategy)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Database: DatabaseConfig{Host: "localhost"},
			Firebase: FirebaseConfig{AuthMode: "firebase", CredentialsPath: "/creds.json"},
			Render:   RenderConfig{WrapStrategy: "regex", PreviewStore: "memory"},
			App:      AppConfig{Environment: "production"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "PORT"},
		{name: "missing database", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: "DB_HOST"},
		{name: "dsn only", mutate: func(c *Config) { c.Database.Host = ""; c.Database.DSN = "postgres://x" }},
		{name: "firebase without credentials", mutate: func(c *Config) { c.Firebase.CredentialsPath = "" }, wantErr: "FIREBASE_CREDENTIALS_PATH"},
		{name: "header auth in production", mutate: func(c *Config) { c.Firebase.AuthMode = "header" }, wantErr: "not allowed in production"},
		{name: "unknown auth mode", mutate: func(c *Config) { c.Firebase.AuthMode = "basic" }, wantErr: "AUTH_MODE"},
		{name: "unknown wrap strategy", mutate: func(c *Config) { c.Render.WrapStrategy = "babel" }, wantErr: "RENDER_WRAP_STRATEGY"},
		{name: "redis store without redis", mutate: func(c *Config) { c.Render.PreviewStore = "redis" }, wantErr: "REDIS_ADDR"},
		{name: "redis store", mutate: func(c *Config) { c.Render.PreviewStore = "redis"; c.Redis.Addr = "localhost:6379" }},
		{name: "unknown store", mutate: func(c *Config) { c.Render.PreviewStore = "disk" }, wantErr: "PREVIEW_STORE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
