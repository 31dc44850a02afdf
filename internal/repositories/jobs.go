package repositories

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/dstrelkov/jobdeck/internal/entities"
)

var ErrNotFound = errors.New("job not found")

const kmPerDegreeLat = 111.195

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

// Create persists an enriched posting. On a slug collision a short suffix
// derived from the record id is appended and the insert is retried once.
func (repo *Jobs) Create(ctx context.Context, job *entities.Job) error {

	var taken int64
	if err := repo.db.WithContext(ctx).Model(&entities.Job{}).
		Where("slug = ?", job.Slug).Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		job.Slug = disambiguateSlug(job.Slug, job.ID)
	}

	err := repo.db.WithContext(ctx).Create(job).Error
	if err != nil && isUniqueViolation(err) {
		job.Slug = disambiguateSlug(job.Slug, job.ID)
		err = repo.db.WithContext(ctx).Create(job).Error
	}
	return err
}

func (repo *Jobs) GetByID(ctx context.Context, id string) (*entities.Job, error) {

	var job entities.Job
	if err := repo.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (repo *Jobs) GetBySlug(ctx context.Context, slug string) (*entities.Job, error) {

	var job entities.Job
	if err := repo.db.WithContext(ctx).First(&job, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// Update saves the full record. Location columns are part of the row, so the
// spatial index stays consistent with whatever the caller re-derived.
func (repo *Jobs) Update(ctx context.Context, job *entities.Job) error {
	return repo.db.WithContext(ctx).Save(job).Error
}

func (repo *Jobs) Remove(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Delete(&entities.Job{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *Jobs) RemoveExpired(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&entities.Job{}, "last_date < ?", expirationTime)
	return res.RowsAffected, res.Error
}

func (repo *Jobs) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&entities.Job{}).Count(&count).Error
	return count, err
}

// FindNear returns every located posting within radiusKm of (lat, lon),
// boundary inclusive, ordered by ascending distance. A bounding box on the
// indexed coordinate columns prefilters candidates; the exact great-circle
// distance decides membership.
func (repo *Jobs) FindNear(ctx context.Context, lat, lon, radiusKm float64,
	filter entities.JobFilter) ([]entities.Job, error) {

	latDelta := radiusKm / kmPerDegreeLat
	lonDelta := 180.0
	if cosLat := math.Cos(lat * math.Pi / 180); cosLat > 1e-3 {
		lonDelta = latDelta / cosLat
	}

	query := repo.db.WithContext(ctx).
		Where("loc_latitude IS NOT NULL").
		Where("loc_latitude BETWEEN ? AND ?", lat-latDelta, lat+latDelta).
		Where("loc_longitude BETWEEN ? AND ?", lon-lonDelta, lon+lonDelta)

	if filter.Industry != "" {
		query = query.Where("industries LIKE ?", "%"+string(filter.Industry)+"%")
	}
	if filter.JobType != "" {
		query = query.Where("job_type = ?", string(filter.JobType))
	}
	if filter.Experience != "" {
		query = query.Where("experience = ?", string(filter.Experience))
	}

	var candidates []entities.Job
	if err := query.Find(&candidates).Error; err != nil {
		return nil, err
	}

	within := lo.Filter(candidates, func(job entities.Job, _ int) bool {
		return job.Location != nil && job.Location.DistanceKm(lat, lon) <= radiusKm
	})

	sort.Slice(within, func(i, j int) bool {
		return within[i].Location.DistanceKm(lat, lon) < within[j].Location.DistanceKm(lat, lon)
	})

	return within, nil
}

func disambiguateSlug(slug, id string) string {
	suffix := strings.ReplaceAll(id, "-", "")
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return slug + "-" + suffix
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}
