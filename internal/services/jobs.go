package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/dstrelkov/jobdeck/internal/entities"
	"github.com/dstrelkov/jobdeck/internal/events"
	"github.com/dstrelkov/jobdeck/internal/logger"
	"github.com/dstrelkov/jobdeck/internal/metrics"
	"github.com/dstrelkov/jobdeck/internal/slug"
)

type jobRepository interface {
	Create(ctx context.Context, job *entities.Job) error
	GetByID(ctx context.Context, id string) (*entities.Job, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Job, error)
	Update(ctx context.Context, job *entities.Job) error
	Remove(ctx context.Context, id string) error
	FindNear(ctx context.Context, lat, lon, radiusKm float64, filter entities.JobFilter) ([]entities.Job, error)
}

type JobService struct {
	bus      EventBus.Bus
	jobs     jobRepository
	enricher *Enricher
}

func NewJobService(bus EventBus.Bus, jobs jobRepository, enricher *Enricher) *JobService {
	return &JobService{bus: bus, jobs: jobs, enricher: enricher}
}

// Create validates raw fields, runs enrichment and persists the result.
// A failure at any stage means nothing is written.
func (s *JobService) Create(ctx context.Context, input entities.JobInput) (*entities.Job, error) {

	job, err := entities.NewJob(input)
	if err != nil {
		return nil, err
	}

	if err = s.enricher.Enrich(ctx, job); err != nil {
		return nil, err
	}

	if err = s.jobs.Create(ctx, job); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to create job: %v", err)
		return nil, err
	}

	metrics.JobsCreatedCounter.Inc()
	s.bus.Publish(events.JobCreatedTopic, events.JobCreated{
		JobID: job.ID,
		Slug:  job.Slug,
		City:  job.Location.City,
	})

	return job, nil
}

// Get accepts either the record id or the slug.
func (s *JobService) Get(ctx context.Context, idOrSlug string) (*entities.Job, error) {
	if _, err := uuid.Parse(idOrSlug); err == nil {
		return s.jobs.GetByID(ctx, idOrSlug)
	}
	return s.jobs.GetBySlug(ctx, idOrSlug)
}

// UpdateJobInput carries partial updates; nil fields stay untouched.
type UpdateJobInput struct {
	Title        *string
	Description  *string
	Email        *string
	Address      *string
	Company      *string
	Industries   []string
	JobType      *string
	MinEducation *string
	Positions    *int
	Experience   *string
	Salary       *float64
	LastDate     *time.Time
}

// Update applies the changed fields, re-validates the record and re-derives
// slug and location when title or address changed. The update is committed
// only after every derived field is recomputed.
func (s *JobService) Update(ctx context.Context, idOrSlug string, input UpdateJobInput) (*entities.Job, error) {

	job, err := s.Get(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	titleChanged, addressChanged := applyUpdate(job, input)

	if err = job.Validate(); err != nil {
		return nil, err
	}

	if titleChanged {
		job.Slug = slug.Generate(job.Title)
	}

	if addressChanged {
		point, resolveErr := s.enricher.ResolveAddress(ctx, job.Address)
		if resolveErr != nil {
			return nil, &EnrichmentError{Cause: resolveErr}
		}
		job.Location = &point
	}

	if err = s.jobs.Update(ctx, job); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to update job: %v", err)
		return nil, err
	}

	return job, nil
}

func (s *JobService) Delete(ctx context.Context, idOrSlug string) error {

	job, err := s.Get(ctx, idOrSlug)
	if err != nil {
		return err
	}

	return s.jobs.Remove(ctx, job.ID)
}

// FindNear returns postings within radiusKm of the point, closest first.
func (s *JobService) FindNear(ctx context.Context, lat, lon, radiusKm float64,
	filter entities.JobFilter) ([]entities.Job, error) {

	if violations := validateNearQuery(lat, lon, radiusKm); violations != nil {
		return nil, &entities.ValidationError{Violations: violations}
	}

	start := time.Now()
	jobs, err := s.jobs.FindNear(ctx, lat, lon, radiusKm, filter)
	metrics.NearQueryDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("near query failed: %v", err)
	}
	return jobs, err
}

func validateNearQuery(lat, lon, radiusKm float64) []entities.FieldViolation {

	var violations []entities.FieldViolation

	if lat < -90 || lat > 90 {
		violations = append(violations, entities.FieldViolation{Field: "Latitude", Reason: "must be between -90 and 90"})
	}
	if lon < -180 || lon > 180 {
		violations = append(violations, entities.FieldViolation{Field: "Longitude", Reason: "must be between -180 and 180"})
	}
	if radiusKm <= 0 {
		violations = append(violations, entities.FieldViolation{Field: "RadiusKm", Reason: "must be greater than zero"})
	}
	return violations
}

func applyUpdate(job *entities.Job, input UpdateJobInput) (titleChanged, addressChanged bool) {

	if input.Title != nil && *input.Title != job.Title {
		job.Title = *input.Title
		titleChanged = true
	}
	if input.Address != nil && *input.Address != job.Address {
		job.Address = *input.Address
		addressChanged = true
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Email != nil {
		job.Email = *input.Email
	}
	if input.Company != nil {
		job.Company = *input.Company
	}
	if input.Industries != nil {
		job.SetIndustries(input.Industries)
	}
	if input.JobType != nil {
		job.JobType = entities.JobType(*input.JobType)
	}
	if input.MinEducation != nil {
		job.MinEducation = entities.Education(*input.MinEducation)
	}
	if input.Positions != nil {
		job.Positions = *input.Positions
	}
	if input.Experience != nil {
		job.Experience = entities.Experience(*input.Experience)
	}
	if input.Salary != nil {
		job.Salary = *input.Salary
	}
	if input.LastDate != nil {
		job.LastDate = *input.LastDate
	}
	return titleChanged, addressChanged
}
