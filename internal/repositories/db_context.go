package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dstrelkov/jobdeck/internal/entities"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.Job{})
	if err != nil {
		return fmt.Errorf("failed to migrate Job entity: %w", err)
	}

	// The slug is the public identifier, so collisions are rejected at the
	// storage level; the composite index backs the bounding-box prefilter of
	// radius queries.
	if err = c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_slug ON jobs (slug); " +
		"CREATE INDEX IF NOT EXISTS idx_jobs_location ON jobs (loc_latitude, loc_longitude);").
		Error; err != nil {
		return fmt.Errorf("failed to create job indexes: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
