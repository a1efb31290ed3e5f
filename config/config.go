package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFile  = "file"
	BackendMongo = "mongo"

	// DefaultSecretKey is the placeholder used when SECRET_KEY is unset.
	DefaultSecretKey = "your-secret-key-here"
)

type Config struct {
	Port           string
	PropertiesFile string
	ImagesDir      string
	StoreBackend   string
	MongoURI       string
	MongoDB        string
	RedisAddr      string
	RedisPassword  string
	CacheTTL       time.Duration

	SMTPServer    string
	SMTPPort      int
	SMTPTimeout   time.Duration
	EmailAddress  string
	EmailPassword string

	AdminUsername string
	AdminPassword string
	SecretKey     string
	SessionTTL    time.Duration
	SecureCookies bool

	CORSOrigins []string
}

// LoadEnv reads a .env file into the environment if one is present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
}

// Load builds the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		PropertiesFile: getEnv("PROPERTIES_FILE", "data/properties.json"),
		ImagesDir:      getEnv("IMAGES_DIR", "static/images"),
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
		MongoURI:       os.Getenv("MONGOURI"),
		MongoDB:        getEnv("DB", "property_chatbot"),
		RedisAddr:      os.Getenv("REDIS_ADD"),
		RedisPassword:  os.Getenv("REDIS_PASS"),
		SMTPServer:     os.Getenv("SMTP_SERVER"),
		EmailAddress:   os.Getenv("EMAIL_ADDRESS"),
		EmailPassword:  os.Getenv("EMAIL_PASSWORD"),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
		SecretKey:      getEnv("SECRET_KEY", DefaultSecretKey),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
	}

	var err error
	if cfg.SMTPPort, err = getInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.SMTPTimeout, err = getDuration("SMTP_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SecureCookies, err = getBool("SECURE_COOKIES", false); err != nil {
		return nil, err
	}

	switch cfg.StoreBackend {
	case BackendFile:
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGOURI not set in environment")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	return cfg, nil
}

// Warnings lists settings that are acceptable for local use but unsafe on a
// public deployment.
func (c *Config) Warnings() []string {
	var warnings []string
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			warnings = append(warnings, "CORS_ORIGINS allows any origin while credentials are allowed; set it to the chatbot's origin")
			break
		}
	}
	if c.SecretKey == DefaultSecretKey {
		warnings = append(warnings, "SECRET_KEY is the built-in placeholder; admin sessions can be forged until it is set")
	}
	return warnings
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %v", key, v, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %v", key, v, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %v", key, v, err)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
