package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type expiredJobsRepository interface {
	RemoveExpired(ctx context.Context, expirationTime time.Time) (int64, error)
}

// ExpiredJobsCleaner removes postings whose application deadline passed more
// than retentionDays ago. Runs nightly.
type ExpiredJobsCleaner struct {
	jobs          expiredJobsRepository
	cron          *cron.Cron
	retentionDays int
}

func NewExpiredJobsCleaner(jobs expiredJobsRepository, retentionDays int) (*ExpiredJobsCleaner, error) {

	if retentionDays <= 0 {
		return nil, errors.New("retention in days must be greater than zero")
	}

	cleaner := &ExpiredJobsCleaner{
		jobs:          jobs,
		cron:          cron.New(),
		retentionDays: retentionDays,
	}

	_, err := cleaner.cron.AddFunc("0 0 * * *", cleaner.cleanExpiredJobs)
	if err != nil {
		return nil, err
	}

	cleaner.cron.Start()
	log.Infof("expired jobs cleaner started, retention in days: %d", cleaner.retentionDays)
	return cleaner, nil
}

func (c *ExpiredJobsCleaner) Stop() {
	c.cron.Stop()
}

func (c *ExpiredJobsCleaner) cleanExpiredJobs() {
	expirationTime := time.Now().Add(-time.Duration(c.retentionDays) * 24 * time.Hour)
	rowsAffected, err := c.jobs.RemoveExpired(context.Background(), expirationTime)
	if err != nil {
		log.Errorf("Failed to clean expired jobs: %v", err)
	} else {
		log.Infof("Expired jobs were cleaned at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}
