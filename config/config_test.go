package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadConfig reads so the host environment
// cannot leak into the assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SEEDER_CONFIG", "SEEDER_BACKEND", "SEEDER_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS",
		"SEEDER_DATABASE_URL", "POCKETBASE_URL", "FIREBASE_PROJECT_ID", "MONGO_DATABASE",
		"LOG_LEVEL", "TELEGRAM_BOT_TOKEN", "AUTHORIZED_CHAT_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, BackendFirestore, cfg.Backend)
	require.Equal(t, "./serviceAccountKey.json", cfg.CredentialsFile)
	require.Equal(t, "https://network-attendance-default-rtdb.firebaseio.com", cfg.DatabaseURL)
	require.Equal(t, "attendance", cfg.MongoDatabase)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.Telegram.BotToken)
}

func TestLoadConfigBackendDefaultURL(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		env     map[string]string
		wantURL string
	}{
		{"pocketbase default", "pocketbase", nil, "http://127.0.0.1:8090"},
		{"pocketbase from POCKETBASE_URL", "PocketBase", map[string]string{"POCKETBASE_URL": "http://192.168.100.100:8090"}, "http://192.168.100.100:8090"},
		{"mongo default", "mongo", nil, "mongodb://localhost:27017"},
		{"memory has no url", "memory", nil, ""},
		{"explicit url wins", "mongo", map[string]string{"SEEDER_DATABASE_URL": "mongodb://db:27017"}, "mongodb://db:27017"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Chdir(t.TempDir())
			t.Setenv("SEEDER_BACKEND", tt.backend)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()
			require.NoError(t, err)
			require.Equal(t, tt.wantURL, cfg.DatabaseURL)
		})
	}
}

func TestLoadConfigYAMLWithEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "seeder.yaml")
	content := `backend: pocketbase
credentials_file: /secrets/superuser.json
database_url: http://pb.internal:8090
log_level: debug
telegram:
  bot_token: yaml-token
  chat_id: "1001"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("SEEDER_CONFIG", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, BackendPocketBase, cfg.Backend)
	require.Equal(t, "/secrets/superuser.json", cfg.CredentialsFile)
	require.Equal(t, "http://pb.internal:8090", cfg.DatabaseURL)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, "yaml-token", cfg.Telegram.BotToken)
	require.Equal(t, "1001", cfg.Telegram.ChatID)
}

func TestLoadConfigCredentialFallback(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/var/run/key.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "/var/run/key.json", cfg.CredentialsFile)

	t.Setenv("SEEDER_CREDENTIALS_FILE", "/etc/seeder/key.json")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "/etc/seeder/key.json", cfg.CredentialsFile)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		clearEnv(t)
		t.Chdir(t.TempDir())
		t.Setenv("SEEDER_BACKEND", "cassandra")

		_, err := LoadConfig()
		require.ErrorContains(t, err, "unsupported backend")
	})

	t.Run("missing yaml file", func(t *testing.T) {
		clearEnv(t)
		t.Chdir(t.TempDir())
		t.Setenv("SEEDER_CONFIG", "/does/not/exist.yaml")

		_, err := LoadConfig()
		require.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		t.Chdir(dir)
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("backend: [unterminated"), 0o600))
		t.Setenv("SEEDER_CONFIG", path)

		_, err := LoadConfig()
		require.ErrorContains(t, err, "failed to decode config file")
	})
}
