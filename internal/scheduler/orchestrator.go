package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/MavJames/ncaab-modeling-code/internal/ingest/sportsref"
	"github.com/MavJames/ncaab-modeling-code/internal/service"
)

// Config holds scheduler configuration
type Config struct {
	DailyRefreshHour int  // Default: 6 (6 AM, after west-coast games finish)
	CurrentSeason    int  // e.g. 2026 for the 2025-26 season
	EnableRefresh    bool // Default: true
	MaxRetries       int  // Default: 3
	RetryDelay       time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		DailyRefreshHour: 6,
		CurrentSeason:    2026,
		EnableRefresh:    true,
		MaxRetries:       3,
		RetryDelay:       time.Minute,
	}
}

// Orchestrator runs the daily refresh: re-scrape yesterday's teams, rebuild
// the feature table, predict today's slate.
type Orchestrator struct {
	ingester    *sportsref.Ingester
	features    *service.FeatureService
	predictions *service.PredictionService
	config      *Config
	cancel      context.CancelFunc
}

// NewOrchestrator creates a new scheduler orchestrator. The prediction
// service may be nil, which skips the scoring step.
func NewOrchestrator(ingester *sportsref.Ingester, features *service.FeatureService, predictions *service.PredictionService, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Orchestrator{
		ingester:    ingester,
		features:    features,
		predictions: predictions,
		config:      config,
	}
}

// Start begins the daily refresh loop and blocks until ctx is cancelled.
func (o *Orchestrator) Start(ctx context.Context) {
	log.Printf("[scheduler] daily refresh: %v (at %02d:00), season %d",
		o.config.EnableRefresh, o.config.DailyRefreshHour, o.config.CurrentSeason)

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if o.config.EnableRefresh {
		go o.runDailyRefresh(ctx)
	}

	<-ctx.Done()
	log.Println("[scheduler] stopping...")
}

// Stop cancels all scheduled tasks
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}

func (o *Orchestrator) runDailyRefresh(ctx context.Context) {
	for {
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), o.config.DailyRefreshHour, 0, 0, 0, now.Location())
		if now.After(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		log.Printf("[scheduler] next refresh: %s (in %v)",
			nextRun.Format("2006-01-02 15:04:05"), time.Until(nextRun).Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("[scheduler] daily refresh stopped")
			return
		case <-time.After(time.Until(nextRun)):
			o.runRefreshTask(ctx)
		}
	}
}

// runRefreshTask performs one full refresh cycle with retries around the
// scrape step, which is the flaky one.
func (o *Orchestrator) runRefreshTask(ctx context.Context) {
	start := time.Now()
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	var updated int
	var err error
	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		updated, err = o.ingester.UpdateDate(ctx, o.config.CurrentSeason, yesterday)
		if err == nil {
			break
		}
		log.Printf("[scheduler] refresh attempt %d/%d failed: %v", attempt, o.config.MaxRetries, err)
		if attempt < o.config.MaxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.config.RetryDelay):
			}
		}
	}
	if err != nil {
		log.Printf("[scheduler] ❌ giving up on refresh for %s: %v", yesterday.Format("2006-01-02"), err)
		return
	}

	if updated > 0 {
		if _, err := o.features.Rebuild(ctx); err != nil {
			log.Printf("[scheduler] ❌ feature rebuild failed: %v", err)
			return
		}
	}

	if o.predictions != nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if _, err := o.predictions.PredictDate(ctx, today); err != nil {
			log.Printf("[scheduler] ❌ prediction failed for %s: %v", today.Format("2006-01-02"), err)
		}
	}

	log.Printf("[scheduler] ✓ daily refresh complete in %v", time.Since(start).Round(time.Second))
}
