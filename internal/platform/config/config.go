package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration. Ledger and proof-system
// endpoints are opaque strings handed to their clients unparsed.
type Server struct {
	Addr        string
	Environment string

	// Trust anchors.
	LedgerRPCURL     string
	RegistryContract string
	ProofSystemURL   string

	// ProofRecheck re-verifies proof digests on every read. Stronger
	// tamper detection, higher latency; off by default.
	ProofRecheck bool

	JWTSigningKey string

	// Read model / cache.
	DatabaseURL  string
	RedisURL     string
	ReadCacheTTL time.Duration
	DefaultTTL   time.Duration

	// Audit streaming.
	KafkaBrokers string
	AuditTopic   string
}

// Defaults kept as vars so tests can observe them.
var (
	DefaultReadCacheTTL  = 3 * time.Second
	DefaultCredentialTTL = 365 * 24 * time.Hour
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:             envOr("PROOFGATE_ADDR", ":8080"),
		Environment:      envOr("PROOFGATE_ENV", "dev"),
		LedgerRPCURL:     os.Getenv("PROOFGATE_LEDGER_RPC_URL"),
		RegistryContract: os.Getenv("PROOFGATE_REGISTRY_CONTRACT"),
		ProofSystemURL:   os.Getenv("PROOFGATE_PROOFSYSTEM_URL"),
		ProofRecheck:     os.Getenv("PROOFGATE_PROOF_RECHECK") == "true",
		JWTSigningKey:    envOr("PROOFGATE_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		DatabaseURL:      os.Getenv("PROOFGATE_DATABASE_URL"),
		RedisURL:         os.Getenv("PROOFGATE_REDIS_URL"),
		ReadCacheTTL:     durationOr("PROOFGATE_READ_CACHE_TTL", DefaultReadCacheTTL),
		DefaultTTL:       durationOr("PROOFGATE_CREDENTIAL_TTL", DefaultCredentialTTL),
		KafkaBrokers:     os.Getenv("PROOFGATE_KAFKA_BROKERS"),
		AuditTopic:       envOr("PROOFGATE_AUDIT_TOPIC", "proofgate.audit"),
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	// Accept bare seconds for operator convenience.
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
