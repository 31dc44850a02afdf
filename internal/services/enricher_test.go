package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dstrelkov/jobdeck/internal/clients/opencage"
	"github.com/dstrelkov/jobdeck/internal/entities"
)

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Resolve(ctx context.Context, address string) (entities.GeoPoint, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(entities.GeoPoint), args.Error(1)
}

var downingSt = entities.GeoPoint{
	Latitude:         51.5034066,
	Longitude:        -0.1275923,
	FormattedAddress: "10 Downing Street, London SW1A 2AA, United Kingdom",
	City:             "London",
	State:            "England",
	ZipCode:          "SW1A 2AA",
	CountryCode:      "gb",
}

func jobCandidate(title, address string) *entities.Job {
	return &entities.Job{Title: title, Address: address}
}

func Test_Enrich_SetsSlugAndLocation(t *testing.T) {

	assert := assert.New(t)

	geocoder := &mockGeocoder{}
	geocoder.On("Resolve", mock.Anything, "10 Downing St, London").Return(downingSt, nil)

	enricher := NewEnricher(geocoder, 2, time.Millisecond)

	job := jobCandidate("Senior Go Developer", "10 Downing St, London")
	assert.NoError(enricher.Enrich(context.Background(), job))

	assert.Equal("senior-go-developer", job.Slug)
	assert.NotNil(job.Location)
	assert.Equal("London", job.Location.City)
	assert.InDelta(51.5034066, job.Location.Latitude, 1e-6)
}

func Test_Enrich_NoResultsFailsWithoutRetry(t *testing.T) {

	geocoder := &mockGeocoder{}
	geocoder.On("Resolve", mock.Anything, mock.Anything).
		Return(entities.GeoPoint{}, opencage.ErrNoResults)

	enricher := NewEnricher(geocoder, 3, time.Millisecond)

	err := enricher.Enrich(context.Background(), jobCandidate("Dev", "qqqq"))

	var enrichmentErr *EnrichmentError
	assert.ErrorAs(t, err, &enrichmentErr)
	assert.ErrorIs(t, err, opencage.ErrNoResults)
	geocoder.AssertNumberOfCalls(t, "Resolve", 1)
}

func Test_Enrich_QuotaExceededIsRetriedUpToTheBound(t *testing.T) {

	geocoder := &mockGeocoder{}
	geocoder.On("Resolve", mock.Anything, mock.Anything).
		Return(entities.GeoPoint{}, opencage.ErrQuotaExceeded)

	enricher := NewEnricher(geocoder, 2, time.Millisecond)

	err := enricher.Enrich(context.Background(), jobCandidate("Dev", "10 Downing St"))

	assert.ErrorIs(t, err, opencage.ErrQuotaExceeded)
	assert.NotErrorIs(t, err, opencage.ErrNoResults)
	geocoder.AssertNumberOfCalls(t, "Resolve", 3)
}

func Test_Enrich_TransientFailureThenSuccess(t *testing.T) {

	geocoder := &mockGeocoder{}
	geocoder.On("Resolve", mock.Anything, mock.Anything).
		Return(entities.GeoPoint{}, errors.New("connection reset")).Once()
	geocoder.On("Resolve", mock.Anything, mock.Anything).
		Return(downingSt, nil).Once()

	enricher := NewEnricher(geocoder, 2, time.Millisecond)

	job := jobCandidate("Dev", "10 Downing St, London")
	assert.NoError(t, enricher.Enrich(context.Background(), job))
	assert.NotNil(t, job.Location)
	geocoder.AssertNumberOfCalls(t, "Resolve", 2)
}

func Test_Enrich_SecondCallForSameAddressHitsTheCache(t *testing.T) {

	geocoder := &mockGeocoder{}
	geocoder.On("Resolve", mock.Anything, mock.Anything).Return(downingSt, nil)

	enricher := NewEnricher(geocoder, 0, time.Millisecond)

	assert.NoError(t, enricher.Enrich(context.Background(), jobCandidate("Dev A", "10 Downing St, London")))
	assert.NoError(t, enricher.Enrich(context.Background(), jobCandidate("Dev B", "10 Downing St, London")))

	geocoder.AssertNumberOfCalls(t, "Resolve", 1)
}

func Test_Enrich_CancelledContextStopsRetrying(t *testing.T) {

	geocoder := &mockGeocoder{}
	geocoder.On("Resolve", mock.Anything, mock.Anything).
		Return(entities.GeoPoint{}, context.Canceled)

	enricher := NewEnricher(geocoder, 5, time.Millisecond)

	err := enricher.Enrich(context.Background(), jobCandidate("Dev", "10 Downing St"))

	assert.ErrorIs(t, err, context.Canceled)
	geocoder.AssertNumberOfCalls(t, "Resolve", 1)
}

func Test_Enrich_FailureLeavesLocationEmpty(t *testing.T) {

	geocoder := &mockGeocoder{}
	geocoder.On("Resolve", mock.Anything, mock.Anything).
		Return(entities.GeoPoint{}, opencage.ErrNoResults)

	enricher := NewEnricher(geocoder, 0, time.Millisecond)

	job := jobCandidate("Dev", "qqqq")
	assert.Error(t, enricher.Enrich(context.Background(), job))
	assert.Nil(t, job.Location)
}
