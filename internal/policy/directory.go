package policy

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Record holds the policy attributes needed to validate a claim
type Record struct {
	PolicyNumber string   `json:"policy_number"`
	Active       bool     `json:"active"`
	CoveredTypes []string `json:"covered_types"`
}

// Covers reports whether the policy covers the given claim type
func (r Record) Covers(claimType string) bool {
	for _, t := range r.CoveredTypes {
		if t == claimType {
			return true
		}
	}
	return false
}

// Directory resolves policy numbers to policy records. Implementations may
// be backed by a real policy database; the pipeline depends only on this
// interface.
type Directory interface {
	Lookup(ctx context.Context, policyNumber string) (Record, error)
}

// StaticDirectory is the stand-in policy source: a policy is active when its
// number carries the configured prefix, and covers a fixed set of claim
// types. No external I/O.
type StaticDirectory struct {
	numberPrefix string
	coveredTypes []string
}

// NewStaticDirectory creates the static policy source
func NewStaticDirectory(numberPrefix string, coveredTypes []string) *StaticDirectory {
	return &StaticDirectory{
		numberPrefix: numberPrefix,
		coveredTypes: coveredTypes,
	}
}

// Lookup resolves a policy number against the static rule set
func (d *StaticDirectory) Lookup(_ context.Context, policyNumber string) (Record, error) {
	return Record{
		PolicyNumber: policyNumber,
		Active:       strings.HasPrefix(policyNumber, d.numberPrefix),
		CoveredTypes: d.coveredTypes,
	}, nil
}

// CachedDirectory wraps a Directory with a TTL cache so repeated claims on
// the same policy do not hit the underlying source again.
type CachedDirectory struct {
	inner  Directory
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewCachedDirectory creates a caching wrapper around inner
func NewCachedDirectory(inner Directory, ttl, sweep time.Duration, logger *zap.Logger) *CachedDirectory {
	return &CachedDirectory{
		inner:  inner,
		cache:  gocache.New(ttl, sweep),
		logger: logger,
	}
}

// Lookup serves from cache when possible, falling through to the inner
// directory on miss. Lookup errors are never cached.
func (d *CachedDirectory) Lookup(ctx context.Context, policyNumber string) (Record, error) {
	if cached, found := d.cache.Get(policyNumber); found {
		d.logger.Debug("Policy directory cache hit", zap.String("policy_number", policyNumber))
		return cached.(Record), nil
	}

	record, err := d.inner.Lookup(ctx, policyNumber)
	if err != nil {
		return Record{}, err
	}

	d.cache.SetDefault(policyNumber, record)
	return record, nil
}
