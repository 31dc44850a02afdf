package services

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"github.com/dstrelkov/jobdeck/internal/clients/opencage"
	"github.com/dstrelkov/jobdeck/internal/entities"
	"github.com/dstrelkov/jobdeck/internal/logger"
	"github.com/dstrelkov/jobdeck/internal/metrics"
	"github.com/dstrelkov/jobdeck/internal/slug"
)

type Geocoder interface {
	Resolve(ctx context.Context, address string) (entities.GeoPoint, error)
}

// Enricher computes the derived fields of a posting before persistence: the
// slug from the title and the location from geocoding the address. The two
// run in that order; slug derivation is pure and cannot fail, geocoding can.
// Enrichment is all-or-nothing: a geocoding failure surfaces as an
// EnrichmentError and the posting must not be persisted.
type Enricher struct {
	geocoder   Geocoder
	cache      *gocache.Cache
	maxRetries int
	retryDelay time.Duration
}

func NewEnricher(geocoder Geocoder, maxRetries int, retryDelay time.Duration) *Enricher {

	if retryDelay <= 0 {
		retryDelay = 500 * time.Millisecond
	}

	return &Enricher{
		geocoder:   geocoder,
		cache:      gocache.New(10*time.Minute, 20*time.Minute),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

func (e *Enricher) Enrich(ctx context.Context, job *entities.Job) error {

	job.Slug = slug.Generate(job.Title)

	point, err := e.ResolveAddress(ctx, job.Address)
	if err != nil {
		return &EnrichmentError{Cause: err}
	}

	job.Location = &point
	return nil
}

// ResolveAddress geocodes with a small in-process cache in front; identical
// addresses within the cache window cost one provider call.
func (e *Enricher) ResolveAddress(ctx context.Context, address string) (entities.GeoPoint, error) {

	if cached, found := e.cache.Get(address); found {
		return cached.(entities.GeoPoint), nil
	}

	point, err := e.resolveWithRetry(ctx, address)
	if err != nil {
		return entities.GeoPoint{}, err
	}

	if cacheErr := e.cache.Add(address, point, gocache.DefaultExpiration); cacheErr != nil {
		log.Errorf("failed to add location to cache: %v", cacheErr)
	}
	return point, nil
}

// resolveWithRetry retries quota and transient failures with a linear
// backoff. Unresolvable addresses are never retried: only a corrected
// address can fix those.
func (e *Enricher) resolveWithRetry(ctx context.Context, address string) (entities.GeoPoint, error) {

	var lastErr error

	for attempt := 0; attempt <= e.maxRetries; attempt++ {

		if attempt > 0 {
			metrics.GeocodeRetriesCounter.Inc()
			select {
			case <-ctx.Done():
				return entities.GeoPoint{}, ctx.Err()
			case <-time.After(e.retryDelay * time.Duration(attempt)):
			}
		}

		start := time.Now()
		point, err := e.geocoder.Resolve(ctx, address)
		metrics.GeocodeDuration.Observe(time.Since(start).Seconds())

		if err == nil {
			return point, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return entities.GeoPoint{}, err
		}

		log.WithField(logger.ErrorTypeField, logger.ErrorTypeGeoApi).
			Errorf("geocoding attempt %v for address failed: %v", attempt+1, err)
	}

	return entities.GeoPoint{}, lastErr
}

func isRetryable(err error) bool {
	if errors.Is(err, opencage.ErrNoResults) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
