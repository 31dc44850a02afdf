package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"github.com/dstrelkov/jobdeck/internal/api"
	"github.com/dstrelkov/jobdeck/internal/clients/opencage"
	"github.com/dstrelkov/jobdeck/internal/config"
	"github.com/dstrelkov/jobdeck/internal/events"
	"github.com/dstrelkov/jobdeck/internal/logger"
	"github.com/dstrelkov/jobdeck/internal/metrics"
	"github.com/dstrelkov/jobdeck/internal/repositories"
	"github.com/dstrelkov/jobdeck/internal/services"
)

func newGeocoder(cfg config.GeocoderConfig) *opencage.Client {

	geocoder := opencage.NewClient(cfg.APIKey)
	geocoder.SetLanguage(cfg.Language)
	geocoder.SetResultIndex(cfg.ResultIndex)
	if cfg.MaxRequestsPerSecond > 0 {
		geocoder.SetRateLimit(cfg.MaxRequestsPerSecond)
	}
	return geocoder
}

func onJobCreated(event events.JobCreated) {
	log.Infof("job created: %v, slug: %v, city: %v", event.JobID, event.Slug, event.City)
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsPort)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	jobs := repositories.NewJobsRepository(dbContext.DB)

	enricher := services.NewEnricher(newGeocoder(cfg.Geocoder), cfg.Geocoder.MaxRetries, cfg.Geocoder.RetryDelay)

	cleaner, err := services.NewExpiredJobsCleaner(jobs, cfg.Cleaner.RetentionDays)
	if err != nil {
		log.Fatalf("can't create cleaner: %v", err)
	}
	defer cleaner.Stop()

	bus := EventBus.New()
	if err = bus.Subscribe(events.JobCreatedTopic, onJobCreated); err != nil {
		log.Fatalf("can't subscribe to job events: %v", err)
	}

	jobService := services.NewJobService(bus, jobs, enricher)
	handler := api.NewHandler(jobService)

	server := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: api.Routes(handler),
	}

	go func() {
		log.Infof("server listening on %v", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	log.Info("Services stopped.")
}
