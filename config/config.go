package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendFirestore  = "firestore"
	BackendPocketBase = "pocketbase"
	BackendMongo      = "mongo"
	BackendMemory     = "memory"
)

const defaultCredentialsFile = "./serviceAccountKey.json"

type Config struct {
	// Document database
	Backend         string `yaml:"backend"`
	CredentialsFile string `yaml:"credentials_file"` // service account / superuser / mongo credential JSON
	DatabaseURL     string `yaml:"database_url"`
	ProjectID       string `yaml:"project_id"` // Firestore only, read from the credential when empty
	MongoDatabase   string `yaml:"mongo_database"`

	LogLevel string `yaml:"log_level"`

	// Telegram summary notifications (optional)
	Telegram TelegramConfig `yaml:"telegram"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

// LoadConfig reads .env, then the optional YAML file named by SEEDER_CONFIG,
// then environment overrides.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("godotenv.Load() error: %v", err)
	}

	cfg := &Config{
		Backend:         BackendFirestore,
		CredentialsFile: defaultCredentialsFile,
		MongoDatabase:   "attendance",
		LogLevel:        "info",
	}

	if path := os.Getenv("SEEDER_CONFIG"); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Backend = strings.ToLower(getEnv("SEEDER_BACKEND", cfg.Backend))
	cfg.CredentialsFile = getEnv("SEEDER_CREDENTIALS_FILE", getEnv("GOOGLE_APPLICATION_CREDENTIALS", cfg.CredentialsFile))
	cfg.DatabaseURL = getEnv("SEEDER_DATABASE_URL", cfg.DatabaseURL)
	cfg.ProjectID = getEnv("FIREBASE_PROJECT_ID", cfg.ProjectID)
	cfg.MongoDatabase = getEnv("MONGO_DATABASE", cfg.MongoDatabase)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Telegram.BotToken = getEnv("TELEGRAM_BOT_TOKEN", cfg.Telegram.BotToken)
	cfg.Telegram.ChatID = getEnv("AUTHORIZED_CHAT_ID", cfg.Telegram.ChatID)

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultDatabaseURL(cfg.Backend)
	}

	switch cfg.Backend {
	case BackendFirestore, BackendPocketBase, BackendMongo, BackendMemory:
	default:
		return nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
	}

	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return nil
}

func defaultDatabaseURL(backend string) string {
	switch backend {
	case BackendPocketBase:
		return getEnv("POCKETBASE_URL", "http://127.0.0.1:8090")
	case BackendMongo:
		return "mongodb://localhost:27017"
	case BackendMemory:
		return ""
	default:
		return "https://network-attendance-default-rtdb.firebaseio.com"
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
