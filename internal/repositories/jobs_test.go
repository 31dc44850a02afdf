package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/dstrelkov/jobdeck/internal/entities"
)

func newTestRepo(t *testing.T) *Jobs {
	t.Helper()

	dbContext, err := NewDbContext(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("can't create db context: %v", err)
	}
	t.Cleanup(func() { _ = dbContext.Close() })

	if err = dbContext.Migrate(); err != nil {
		t.Fatalf("can't migrate: %v", err)
	}

	return NewJobsRepository(dbContext.DB)
}

func testJob(title string, location *entities.GeoPoint) *entities.Job {
	now := time.Now().UTC()
	return &entities.Job{
		ID:           uuid.NewString(),
		Title:        title,
		Slug:         "test-" + uuid.NewString()[:8],
		Description:  "A job.",
		Address:      "somewhere",
		Location:     location,
		Company:      "Acme Ltd",
		Industries:   string(entities.IndustryIT),
		JobType:      entities.Permanent,
		MinEducation: entities.Bachelors,
		Positions:    1,
		Experience:   entities.TwoToFive,
		Salary:       50000,
		PostingDate:  now,
		LastDate:     now.Add(7 * 24 * time.Hour),
	}
}

func point(lat, lon float64) *entities.GeoPoint {
	return &entities.GeoPoint{
		Latitude:    lat,
		Longitude:   lon,
		City:        "London",
		CountryCode: "gb",
	}
}

func Test_Jobs_CreateAndGetRoundtrip(t *testing.T) {

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	job := testJob("Go Developer", point(51.5034066, -0.1275923))
	job.ApplicantsApplied = []entities.Applicant{{UserID: "u1", ResumeID: "r1", AppliedAt: time.Now().UTC()}}
	assert.NoError(repo.Create(ctx, job))

	byID, err := repo.GetByID(ctx, job.ID)
	assert.NoError(err)
	assert.Equal(job.Title, byID.Title)
	assert.NotNil(byID.Location)
	assert.InDelta(51.5034066, byID.Location.Latitude, 1e-6)
	assert.InDelta(-0.1275923, byID.Location.Longitude, 1e-6)
	assert.Equal("London", byID.Location.City)
	assert.Len(byID.ApplicantsApplied, 1)

	bySlug, err := repo.GetBySlug(ctx, job.Slug)
	assert.NoError(err)
	assert.Equal(job.ID, bySlug.ID)
}

func Test_Jobs_GetUnknownReturnsErrNotFound(t *testing.T) {

	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_Jobs_SlugCollisionGetsDisambiguatingSuffix(t *testing.T) {

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testJob("Go Developer", point(51.5, -0.12))
	first.Slug = "go-developer"
	assert.NoError(repo.Create(ctx, first))

	second := testJob("Go Developer", point(51.5, -0.12))
	second.Slug = "go-developer"
	assert.NoError(repo.Create(ctx, second))

	assert.NotEqual(first.Slug, second.Slug)
	assert.Contains(second.Slug, "go-developer-")
}

func Test_Jobs_FindNearReturnsOnlyJobsWithinRadiusOrderedByDistance(t *testing.T) {

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	downing := testJob("Near Downing St", point(51.5034066, -0.1275923))
	kingsCross := testJob("Near Kings Cross", point(51.5309, -0.1233))
	heathrow := testJob("Near Heathrow", point(51.4700, -0.4543))
	unlocated := testJob("No location", nil)

	for _, job := range []*entities.Job{heathrow, kingsCross, downing, unlocated} {
		assert.NoError(repo.Create(ctx, job))
	}

	// query from Trafalgar Square
	found, err := repo.FindNear(ctx, 51.508, -0.128, 5, entities.JobFilter{})
	assert.NoError(err)

	titles := lo.Map(found, func(job entities.Job, _ int) string { return job.Title })
	assert.Equal([]string{"Near Downing St", "Near Kings Cross"}, titles)
}

func Test_Jobs_FindNearRadiusIsBoundaryInclusive(t *testing.T) {

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	job := testJob("On the boundary", point(51.5034066, -0.1275923))
	assert.NoError(repo.Create(ctx, job))

	queryLat, queryLon := 51.508, -0.128
	exactDistance := job.Location.DistanceKm(queryLat, queryLon)

	found, err := repo.FindNear(ctx, queryLat, queryLon, exactDistance, entities.JobFilter{})
	assert.NoError(err)
	assert.Len(found, 1)

	found, err = repo.FindNear(ctx, queryLat, queryLon, exactDistance*0.99, entities.JobFilter{})
	assert.NoError(err)
	assert.Empty(found)
}

func Test_Jobs_FindNearAppliesFilters(t *testing.T) {

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	itJob := testJob("IT job", point(51.5034, -0.1276))

	bankingJob := testJob("Banking job", point(51.5040, -0.1280))
	bankingJob.Industries = string(entities.IndustryBanking)
	bankingJob.JobType = entities.Internship
	bankingJob.Experience = entities.NoExperience

	assert.NoError(repo.Create(ctx, itJob))
	assert.NoError(repo.Create(ctx, bankingJob))

	found, err := repo.FindNear(ctx, 51.508, -0.128, 5, entities.JobFilter{Industry: entities.IndustryBanking})
	assert.NoError(err)
	assert.Len(found, 1)
	assert.Equal("Banking job", found[0].Title)

	found, err = repo.FindNear(ctx, 51.508, -0.128, 5, entities.JobFilter{JobType: entities.Permanent})
	assert.NoError(err)
	assert.Len(found, 1)
	assert.Equal("IT job", found[0].Title)

	found, err = repo.FindNear(ctx, 51.508, -0.128, 5, entities.JobFilter{Experience: entities.NoExperience})
	assert.NoError(err)
	assert.Len(found, 1)
	assert.Equal("Banking job", found[0].Title)
}

func Test_Jobs_UpdateKeepsSpatialQueriesConsistent(t *testing.T) {

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	job := testJob("Relocating job", point(51.5034, -0.1276))
	assert.NoError(repo.Create(ctx, job))

	// move it to Cambridge
	job.Location = &entities.GeoPoint{Latitude: 52.2053, Longitude: 0.1218, City: "Cambridge"}
	assert.NoError(repo.Update(ctx, job))

	nearLondon, err := repo.FindNear(ctx, 51.508, -0.128, 5, entities.JobFilter{})
	assert.NoError(err)
	assert.Empty(nearLondon)

	nearCambridge, err := repo.FindNear(ctx, 52.2, 0.12, 5, entities.JobFilter{})
	assert.NoError(err)
	assert.Len(nearCambridge, 1)
}

func Test_Jobs_RemoveExpired(t *testing.T) {

	assert := assert.New(t)
	repo := newTestRepo(t)
	ctx := context.Background()

	stale := testJob("Stale", point(51.5, -0.12))
	stale.LastDate = time.Now().AddDate(0, 0, -60)

	fresh := testJob("Fresh", point(51.5, -0.12))

	assert.NoError(repo.Create(ctx, stale))
	assert.NoError(repo.Create(ctx, fresh))

	removed, err := repo.RemoveExpired(ctx, time.Now().AddDate(0, 0, -30))
	assert.NoError(err)
	assert.EqualValues(1, removed)

	count, err := repo.Count(ctx)
	assert.NoError(err)
	assert.EqualValues(1, count)
}

func Test_Jobs_RemoveUnknownReturnsErrNotFound(t *testing.T) {

	repo := newTestRepo(t)
	err := repo.Remove(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
