package services

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

// researchProvider is the content-generation collaborator producing research
// text for a company. The engine treats its output as an opaque string.
type researchProvider interface {
	Research(ctx context.Context, companyName, roleTitle string) (string, error)
}

// CachedResearch decorates a research provider with a TTL cache, replacing
// the ambient module-level dictionary the workflow used to lean on. Entries
// expire after the configured number of days (7 by default).
type CachedResearch struct {
	provider researchProvider
	cache    *gocache.Cache
}

func NewCachedResearch(provider researchProvider, expirationInDays int) *CachedResearch {
	ttl := time.Duration(expirationInDays) * 24 * time.Hour
	return &CachedResearch{
		provider: provider,
		cache:    gocache.New(ttl, ttl/2),
	}
}

func (c *CachedResearch) Research(ctx context.Context, companyName, roleTitle string) (string, error) {
	key := researchCacheKey(companyName, roleTitle)
	if value, found := c.cache.Get(key); found {
		return value.(string), nil
	}

	research, err := c.provider.Research(ctx, companyName, roleTitle)
	if err != nil {
		return "", err
	}

	if err = c.cache.Add(key, research, gocache.DefaultExpiration); err != nil {
		log.Errorf("failed to add research to cache: %v", err)
	}
	return research, nil
}

// Invalidate drops a company's cached research, used by force refresh.
func (c *CachedResearch) Invalidate(companyName, roleTitle string) {
	c.cache.Delete(researchCacheKey(companyName, roleTitle))
}

func (c *CachedResearch) DeleteExpired() {
	c.cache.DeleteExpired()
}

func (c *CachedResearch) ItemCount() int {
	return c.cache.ItemCount()
}

func researchCacheKey(companyName, roleTitle string) string {
	return strings.ToLower(companyName) + "_" + strings.ToLower(roleTitle)
}
