package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string
	KafkaTopic   string

	MaxDBConns int32

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	AdminResolveTimeout time.Duration
	PublicCacheTTL      time.Duration
	BcryptCost          int

	MediaDir     string
	MediaBaseURL string
	AdminEmails  []string
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL  string   `yaml:"postgres_url"`
		RedisURL     string   `yaml:"redis_url"`
		KafkaBrokers []string `yaml:"kafka_brokers"`
		KafkaTopic   string   `yaml:"kafka_topic"`
	} `yaml:"dependencies"`
	Auth struct {
		JWTIssuer         string `yaml:"jwt_issuer"`
		GoogleRedirectURI string `yaml:"google_redirect_uri"`
	} `yaml:"auth"`
	Media struct {
		Dir     string `yaml:"dir"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"media"`
}

// LoadConfig layers file defaults under environment overrides. A .env file,
// when present, is folded into the environment first. Secrets only ever come
// from the environment.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ServiceID:           "label-cms",
		HTTPPort:            8080,
		MaxDBConns:          20,
		KafkaTopic:          "catalog.events",
		JWTIssuer:           "label-cms",
		TokenTTL:            24 * time.Hour,
		AdminResolveTimeout: 10 * time.Second,
		PublicCacheTTL:      time.Minute,
		MediaDir:            "media",
		MediaBaseURL:        "http://localhost:8080/media",
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaTopic != "" {
			cfg.KafkaTopic = f.Dependencies.KafkaTopic
		}
		if f.Auth.JWTIssuer != "" {
			cfg.JWTIssuer = f.Auth.JWTIssuer
		}
		if f.Auth.GoogleRedirectURI != "" {
			cfg.GoogleRedirectURI = f.Auth.GoogleRedirectURI
		}
		if f.Media.Dir != "" {
			cfg.MediaDir = f.Media.Dir
		}
		if f.Media.BaseURL != "" {
			cfg.MediaBaseURL = f.Media.BaseURL
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopic = envOrDefault("KAFKA_TOPIC", cfg.KafkaTopic)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.JWTIssuer = envOrDefault("JWT_ISSUER", cfg.JWTIssuer)
	cfg.TokenTTL = time.Duration(envInt("TOKEN_TTL_HOURS", int(cfg.TokenTTL.Hours()))) * time.Hour
	cfg.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURI = envOrDefault("GOOGLE_REDIRECT_URI", cfg.GoogleRedirectURI)
	cfg.AdminResolveTimeout = time.Duration(envInt("ADMIN_RESOLVE_TIMEOUT_SECONDS", int(cfg.AdminResolveTimeout.Seconds()))) * time.Second
	cfg.PublicCacheTTL = time.Duration(envInt("PUBLIC_CACHE_SECONDS", int(cfg.PublicCacheTTL.Seconds()))) * time.Second
	cfg.BcryptCost = envInt("BCRYPT_COST", cfg.BcryptCost)
	cfg.MediaDir = envOrDefault("MEDIA_DIR", cfg.MediaDir)
	cfg.MediaBaseURL = envOrDefault("MEDIA_BASE_URL", cfg.MediaBaseURL)
	cfg.AdminEmails = envCSV("ADMIN_EMAILS", cfg.AdminEmails)

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
