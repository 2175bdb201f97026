// internal/infrastructure/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"farecast-service/internal/domain/entity"

	"github.com/joho/godotenv"
)

const destinationPrefix = "AM_DEST_"

// Destination is one configured fare query target
type Destination = entity.Destination

// Config holds all configuration for the application.
// It is built once at startup and never mutated afterwards.
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Schedule
	TickInterval        time.Duration
	ScheduleTimezone    string
	ScheduleRetryFailed bool

	// Amadeus
	AmadeusBaseURL      string
	AmadeusClientID     string
	AmadeusClientSecret string
	Origin              string
	Currency            string
	Destinations        []Destination

	// Discord
	DiscordAPIBaseURL    string
	DiscordToken         string
	DiscordPublicKey     string
	DiscordChannelID     string
	DiscordApplicationID string
	DiscordGuildID       string
	EchoVerify           bool

	// Marker store
	MarkerBackend string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MongoURI      string
	MongoDB       string
	PostgresURI   string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		TickInterval:        time.Duration(getEnvAsInt("TICK_INTERVAL", 300)) * time.Second,
		ScheduleTimezone:    getEnv("SCHEDULE_TIMEZONE", "America/Santiago"),
		ScheduleRetryFailed: getEnvAsBool("SCHEDULE_RETRY_FAILED", false),

		AmadeusBaseURL:      strings.TrimRight(getEnv("AMADEUS_BASE_URL", "https://api.amadeus.com"), "/"),
		AmadeusClientID:     getEnv("AMADEUS_CLIENT_ID", ""),
		AmadeusClientSecret: getEnv("AMADEUS_CLIENT_SECRET", ""),
		Origin:              getEnv("AM_ORIGIN", "SCL"),
		Currency:            getEnv("AM_CURRENCY", "CLP"),

		DiscordAPIBaseURL:    strings.TrimRight(getEnv("DISCORD_API_BASE_URL", "https://discord.com/api/v10"), "/"),
		DiscordToken:         getEnv("DISCORD_TOKEN", ""),
		DiscordPublicKey:     getEnv("DISCORD_PUBLIC_KEY", ""),
		DiscordChannelID:     getEnv("DISCORD_CHANNEL_ID", ""),
		DiscordApplicationID: getEnv("DISCORD_APPLICATION_ID", getEnv("DISCORD_CLIENT_ID", "")),
		DiscordGuildID:       getEnv("DISCORD_GUILD_ID", ""),
		EchoVerify:           getEnv("ECHO_VERIFY", "") == "true",

		MarkerBackend: strings.ToLower(getEnv("MARKER_BACKEND", "memory")),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "farecast"),
		PostgresURI:   getEnv("POSTGRES_DSN", ""),
	}

	destinations, err := loadDestinations(os.Environ(), getEnv("AM_DEST_ORDER", ""))
	if err != nil {
		return nil, err
	}
	config.Destinations = destinations

	if config.TickInterval <= 0 {
		return nil, fmt.Errorf("TICK_INTERVAL must be positive")
	}

	switch config.MarkerBackend {
	case "memory", "redis", "mongo", "postgres":
	default:
		return nil, fmt.Errorf("unknown MARKER_BACKEND %q", config.MarkerBackend)
	}
	if config.MarkerBackend == "postgres" && config.PostgresURI == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required for MARKER_BACKEND=postgres")
	}

	return config, nil
}

// ValidateJob reports every setting the daily job needs but is missing
func (c *Config) ValidateJob() error {
	var missing []string
	if c.AmadeusClientID == "" {
		missing = append(missing, "AMADEUS_CLIENT_ID")
	}
	if c.AmadeusClientSecret == "" {
		missing = append(missing, "AMADEUS_CLIENT_SECRET")
	}
	if c.DiscordToken == "" {
		missing = append(missing, "DISCORD_TOKEN")
	}
	if c.DiscordChannelID == "" {
		missing = append(missing, "DISCORD_CHANNEL_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}
	if len(c.Destinations) == 0 {
		return errors.New("no destinations configured")
	}
	return nil
}

// loadDestinations collects AM_DEST_<NAME>=<CODE> pairs from environ.
// order lists names to put first; the rest follow alphabetically.
func loadDestinations(environ []string, order string) ([]Destination, error) {
	byName := make(map[string]string)
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, destinationPrefix) || key == "AM_DEST_ORDER" {
			continue
		}
		name := strings.TrimPrefix(key, destinationPrefix)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		byName[name] = value
	}

	if len(byName) == 0 {
		return []Destination{
			{Name: "TOKYO", Code: "TYO"},
			{Name: "OSAKA", Code: "OSA"},
		}, nil
	}

	var out []Destination
	seen := make(map[string]bool)
	for _, name := range strings.Split(order, ",") {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		code, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("AM_DEST_ORDER names %s but %s%s is not set", name, destinationPrefix, name)
		}
		seen[name] = true
		out = append(out, Destination{Name: name, Code: code})
	}

	var rest []string
	for name := range byName {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, Destination{Name: name, Code: byName[name]})
	}
	return out, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
