// Package cache provides a read-through cache over the registry ledger.
// Verification reads hit the cache; mutations invalidate it, so staleness is
// bounded by the configured TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"proofgate/internal/registry/metrics"
	"proofgate/internal/registry/models"
	id "proofgate/pkg/domain"
)

const keyPrefix = "proofgate:cred:"

// Source is the authoritative read side the cache falls through to.
type Source interface {
	Get(ctx context.Context, credentialID id.CredentialID) (models.Credential, error)
	ListBySubject(ctx context.Context, subjectID id.SubjectID) ([]models.Credential, error)
}

// Option configures the credential cache.
type Option func(*CredentialCache)

// CredentialCache serves credential reads from a KV store, falling through to
// the ledger on miss. Concurrent misses for the same ID are collapsed into a
// single ledger read.
type CredentialCache struct {
	source  Source
	kv      KV
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a credential cache over the given source and KV backend.
func New(source Source, kv KV, ttl time.Duration, opts ...Option) *CredentialCache {
	c := &CredentialCache{
		source: source,
		kv:     kv,
		ttl:    ttl,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithMetrics sets the metrics instance for the cache.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *CredentialCache) { c.metrics = m }
}

// WithLogger sets the logger instance for the cache.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CredentialCache) { c.logger = logger }
}

// Get returns the credential for the given ID, from cache when fresh.
// Misses and KV failures fall through to the source; not-found results are
// never cached, so a subsequent issuance is visible immediately.
func (c *CredentialCache) Get(ctx context.Context, credentialID id.CredentialID) (models.Credential, error) {
	key := keyPrefix + credentialID.String()

	if raw, err := c.kv.Get(ctx, key); err == nil {
		var cred models.Credential
		if err := json.Unmarshal(raw, &cred); err == nil {
			c.recordHit()
			return cred, nil
		}
		// Corrupt entry: drop it and fall through to the ledger.
		c.drop(ctx, key)
	} else if !errors.Is(err, ErrMiss) && c.logger != nil {
		c.logger.WarnContext(ctx, "cache read failed, falling through",
			"error", err,
			"credential_id", credentialID,
		)
	}
	c.recordMiss()

	result, err, _ := c.group.Do(key, func() (any, error) {
		cred, err := c.source.Get(ctx, credentialID)
		if err != nil {
			return models.Credential{}, err
		}
		if raw, err := json.Marshal(cred); err == nil {
			if setErr := c.kv.Set(ctx, key, raw, c.ttl); setErr != nil && c.logger != nil {
				c.logger.WarnContext(ctx, "cache write failed", "error", setErr)
			}
		}
		return cred, nil
	})
	if err != nil {
		return models.Credential{}, err
	}
	return result.(models.Credential), nil
}

// ListBySubject is not cached: the match path needs the full current set and
// subject listings mutate on every issuance. Delegates to the source.
func (c *CredentialCache) ListBySubject(ctx context.Context, subjectID id.SubjectID) ([]models.Credential, error) {
	return c.source.ListBySubject(ctx, subjectID)
}

// Invalidate drops the cached entry for a credential after a mutation.
func (c *CredentialCache) Invalidate(ctx context.Context, credentialID id.CredentialID) {
	c.drop(ctx, keyPrefix+credentialID.String())
}

func (c *CredentialCache) drop(ctx context.Context, key string) {
	if err := c.kv.Del(ctx, key); err != nil && c.logger != nil {
		c.logger.WarnContext(ctx, "cache invalidation failed", "error", err, "key", key)
	}
}

func (c *CredentialCache) recordHit() {
	if c.metrics != nil {
		c.metrics.CacheHits.Inc()
	}
}

func (c *CredentialCache) recordMiss() {
	if c.metrics != nil {
		c.metrics.CacheMisses.Inc()
	}
}
