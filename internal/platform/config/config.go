package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string
	JWTSigningKey     string
	AdminResetKeyHash string

	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
}

// RedisConfig holds connection settings for the onboarding flag store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig holds connection settings for the catalog and wallet stores.
type PostgresConfig struct {
	DSN           string
	MigrationsURL string
}

// KafkaConfig holds the audit event sink settings. Empty brokers disables
// the Kafka sink and audit events stay on the in-process store.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CARDSPACE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("CARDSPACE_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	auditTopic := os.Getenv("CARDSPACE_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "cardspace.audit"
	}

	var brokers []string
	if raw := os.Getenv("CARDSPACE_KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	return Server{
		Addr:              addr,
		JWTSigningKey:     jwtSigningKey,
		AdminResetKeyHash: os.Getenv("CARDSPACE_ADMIN_RESET_KEY_HASH"),
		Redis: RedisConfig{
			URL:          os.Getenv("CARDSPACE_REDIS_URL"),
			PoolSize:     envInt("CARDSPACE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("CARDSPACE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("CARDSPACE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("CARDSPACE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("CARDSPACE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			DSN:           os.Getenv("CARDSPACE_POSTGRES_DSN"),
			MigrationsURL: envDefault("CARDSPACE_MIGRATIONS_URL", "file://migrations"),
		},
		Kafka: KafkaConfig{
			Brokers:    brokers,
			AuditTopic: auditTopic,
		},
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
