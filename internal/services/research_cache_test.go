package services

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fakeResearchProvider struct {
	calls  int
	result string
	err    error
}

func (p *fakeResearchProvider) Research(_ context.Context, _, _ string) (string, error) {
	p.calls++
	return p.result, p.err
}

func Test_Research_ShouldServeSecondCallFromCache(t *testing.T) {
	provider := &fakeResearchProvider{result: "acme dossier"}
	cached := NewCachedResearch(provider, 7)
	ctx := context.Background()

	first, err := cached.Research(ctx, "Acme", "Growth PM")
	assert.NoError(t, err)
	second, err := cached.Research(ctx, "Acme", "Growth PM")
	assert.NoError(t, err)

	assert.Equal(t, "acme dossier", first)
	assert.Equal(t, "acme dossier", second)
	assert.Equal(t, 1, provider.calls)
}

func Test_Research_ShouldCachePerCompanyAndRole(t *testing.T) {
	provider := &fakeResearchProvider{result: "dossier"}
	cached := NewCachedResearch(provider, 7)
	ctx := context.Background()

	_, err := cached.Research(ctx, "Acme", "Growth PM")
	assert.NoError(t, err)
	_, err = cached.Research(ctx, "Acme", "Product Manager")
	assert.NoError(t, err)

	assert.Equal(t, 2, provider.calls)
	assert.Equal(t, 2, cached.ItemCount())
}

func Test_Research_WhenProviderFails_ShouldNotCacheError(t *testing.T) {
	provider := &fakeResearchProvider{err: errors.New("rate limited")}
	cached := NewCachedResearch(provider, 7)
	ctx := context.Background()

	_, err := cached.Research(ctx, "Acme", "Growth PM")
	assert.Error(t, err)

	provider.err = nil
	provider.result = "dossier"
	result, err := cached.Research(ctx, "Acme", "Growth PM")

	assert.NoError(t, err)
	assert.Equal(t, "dossier", result)
	assert.Equal(t, 2, provider.calls)
}

func Test_Invalidate_ShouldForceNextResearchThrough(t *testing.T) {
	provider := &fakeResearchProvider{result: "dossier"}
	cached := NewCachedResearch(provider, 7)
	ctx := context.Background()

	_, err := cached.Research(ctx, "Acme", "Growth PM")
	assert.NoError(t, err)

	cached.Invalidate("Acme", "Growth PM")

	_, err = cached.Research(ctx, "Acme", "Growth PM")
	assert.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

func Test_NewCacheJanitor_WhenCacheNil_ShouldFail(t *testing.T) {
	_, err := NewCacheJanitor(nil)
	assert.Error(t, err)
}

func Test_NewCacheJanitor_ShouldStartAndStop(t *testing.T) {
	provider := &fakeResearchProvider{result: "dossier"}
	janitor, err := NewCacheJanitor(NewCachedResearch(provider, 7))

	assert.NoError(t, err)
	janitor.Stop()
}
