package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Backend selection.
	StorageBackend string `mapstructure:"STORAGE_BACKEND"` // local | remote
	LocalStore     string `mapstructure:"LOCAL_STORE"`     // redis | memory
	RemoteStore    string `mapstructure:"REMOTE_STORE"`    // firebase | mongo | memory
	Notifier       string `mapstructure:"NOTIFIER"`        // redis | memory

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisStoreDB  int    `mapstructure:"REDIS_STORE_DB"`
	RedisEventsDB int    `mapstructure:"REDIS_EVENTS_DB"`

	// MongoDB configuration.
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	// Firebase Realtime Database.
	FirebaseDatabaseURL     string `mapstructure:"FIREBASE_DATABASE_URL"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Board behaviour.
	RemotePollInterval time.Duration `mapstructure:"REMOTE_POLL_INTERVAL"`
	DraftDebounce      time.Duration `mapstructure:"DRAFT_DEBOUNCE"`
	NotesCap           int           `mapstructure:"NOTES_CAP"`
	Timezone           string        `mapstructure:"TIMEZONE"`
	RolloverSchedule   string        `mapstructure:"ROLLOVER_SCHEDULE"`
}

var AppConfig Config

var defaults = map[string]interface{}{
	"APP_PORT":                  "8080",
	"ENV":                       "development",
	"LOG_LEVEL":                 "info",
	"MAX_REQUESTS_PER_MIN":      200,
	"STORAGE_BACKEND":           "remote",
	"LOCAL_STORE":               "redis",
	"REMOTE_STORE":              "firebase",
	"NOTIFIER":                  "redis",
	"REDIS_ADDR":                "localhost:6379",
	"REDIS_PASSWORD":            "",
	"REDIS_STORE_DB":            0,
	"REDIS_EVENTS_DB":           1,
	"DATABASE_URL":              "mongodb://localhost:27017",
	"MONGO_DATABASE":            "gkmslots",
	"FIREBASE_DATABASE_URL":     "",
	"FIREBASE_CREDENTIALS_FILE": "serviceAccountKey.json",
	"REMOTE_POLL_INTERVAL":      "5s",
	"DRAFT_DEBOUNCE":            "400ms",
	"NOTES_CAP":                 50,
	"TIMEZONE":                  "Local",
	"ROLLOVER_SCHEDULE":         "0 0 * * *",
}

// Load reads config.yaml (from the working directory or ./config) and the
// environment into a Config. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case "local", "remote":
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND %q (expected local or remote)", c.StorageBackend)
	}
	switch c.LocalStore {
	case "redis", "memory":
	default:
		return fmt.Errorf("invalid LOCAL_STORE %q (expected redis or memory)", c.LocalStore)
	}
	switch c.RemoteStore {
	case "firebase", "mongo", "memory":
	default:
		return fmt.Errorf("invalid REMOTE_STORE %q (expected firebase, mongo or memory)", c.RemoteStore)
	}
	switch c.Notifier {
	case "redis", "memory":
	default:
		return fmt.Errorf("invalid NOTIFIER %q (expected redis or memory)", c.Notifier)
	}
	if c.NotesCap <= 0 {
		return fmt.Errorf("NOTES_CAP must be positive, got %d", c.NotesCap)
	}
	return nil
}

// LoadConfig populates AppConfig and exits the process on failure.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = *cfg
}

// Location resolves TIMEZONE, falling back to the local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using local time", c.Timezone)
		return time.Local
	}
	return loc
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
