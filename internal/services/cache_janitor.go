package services

import (
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type expirableCache interface {
	DeleteExpired()
	ItemCount() int
}

// CacheJanitor purges expired research entries once a day so a long-running
// session doesn't serve stale dossiers.
type CacheJanitor struct {
	cache expirableCache
	cron  *cron.Cron
}

func NewCacheJanitor(cache expirableCache) (*CacheJanitor, error) {

	if cache == nil {
		return nil, errors.New("cache must not be nil")
	}

	janitor := &CacheJanitor{
		cache: cache,
		cron:  cron.New(),
	}

	_, err := janitor.cron.AddFunc("0 0 * * *", janitor.purgeExpired)
	if err != nil {
		return nil, err
	}

	janitor.cron.Start()
	log.Info("research cache janitor started")
	return janitor, nil
}

func (j *CacheJanitor) Stop() {
	j.cron.Stop()
}

func (j *CacheJanitor) purgeExpired() {
	before := j.cache.ItemCount()
	j.cache.DeleteExpired()
	log.Infof("purged %v expired research entries", before-j.cache.ItemCount())
}
