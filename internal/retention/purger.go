// Package retention trims persisted access logs in the background.
package retention

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/synergy-india/admin-api/internal/models"
	"github.com/synergy-india/admin-api/internal/repository"
)

// Purger periodically deletes access logs older than the retention window.
type Purger struct {
	logs      repository.Repository[models.AccessLog]
	retention time.Duration
	interval  time.Duration
	log       *logrus.Entry
	now       func() time.Time
}

func NewPurger(logger *logrus.Logger, logs repository.Repository[models.AccessLog], retention, interval time.Duration) *Purger {
	return &Purger{
		logs:      logs,
		retention: retention,
		interval:  interval,
		log:       logger.WithField("component", "access_log_purger"),
		now:       time.Now,
	}
}

// Start runs until ctx is cancelled. It purges once immediately and then on
// every tick.
func (p *Purger) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.WithFields(logrus.Fields{
		"retention": p.retention,
		"interval":  p.interval,
	}).Info("Starting access log purger")

	p.Purge(ctx)
	for {
		select {
		case <-ticker.C:
			p.Purge(ctx)
		case <-ctx.Done():
			p.log.Info("Stopping access log purger")
			return
		}
	}
}

// Purge deletes expired access logs and returns how many were removed.
func (p *Purger) Purge(ctx context.Context) int64 {
	log := p.log.WithField("operation", "access_log_purge")
	cutoff := p.now().UTC().Add(-p.retention)

	n, err := p.logs.DeleteMany(ctx, repository.Where(repository.Lt("timestamp", cutoff)))
	if err != nil {
		log.WithError(err).Error("Access log purge failed")
		return 0
	}
	if n > 0 {
		log.WithFields(logrus.Fields{"count": n, "cutoff": cutoff}).Info("Purged expired access logs")
	}
	return n
}
