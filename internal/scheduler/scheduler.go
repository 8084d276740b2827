package scheduler

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"leasehawk/server/config"
	"leasehawk/server/internal/alerts"
	"leasehawk/server/internal/database"
	"leasehawk/server/internal/geocoding"
	"leasehawk/server/internal/matching"
	"leasehawk/server/internal/models"
	"leasehawk/server/internal/pipeline"
	"leasehawk/server/internal/urgency"
)

// JobType represents different types of scheduled jobs
type JobType int

const (
	JobTypeRematch JobType = iota
	JobTypeGeocode
	JobTypeAlerts
)

// String returns the string representation of a JobType
func (j JobType) String() string {
	switch j {
	case JobTypeRematch:
		return "rematch"
	case JobTypeGeocode:
		return "geocode"
	case JobTypeAlerts:
		return "alerts"
	default:
		return "unknown"
	}
}

// Scheduler manages the periodic background jobs: hourly full rematch
// runs, a nightly geocoding sweep and high-urgency alert delivery.
type Scheduler struct {
	db           *database.Database
	matcher      *matching.Manager
	geocoder     *geocoding.Geocoder
	alertService *alerts.Service
	scoringCfg   config.ScoringConfig
	logger       *logrus.Logger
	stopChan     chan struct{}
	wg           sync.WaitGroup
	jobMutex     sync.Mutex // Ensures sequential job execution
	isStartupRun bool       // Tracks whether we're in startup run

	notified   map[int64]bool // prospectus ids already alerted on
	notifiedMu sync.Mutex
}

// NewScheduler creates a new scheduler
func NewScheduler(db *database.Database, matcher *matching.Manager, geocoder *geocoding.Geocoder, alertService *alerts.Service, scoringCfg config.ScoringConfig, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		db:           db,
		matcher:      matcher,
		geocoder:     geocoder,
		alertService: alertService,
		scoringCfg:   scoringCfg,
		logger:       logger,
		stopChan:     make(chan struct{}),
		isStartupRun: true,
		notified:     make(map[int64]bool),
	}
}

// Start begins the scheduled tasks
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.runScheduler()
}

// runScheduler handles all scheduled tasks
func (s *Scheduler) runScheduler() {
	defer s.wg.Done()

	// Run startup jobs in a separate goroutine
	go func() {
		s.jobMutex.Lock()
		defer s.jobMutex.Unlock()
		s.logger.Info("Running startup jobs")
		s.runRematch()
		s.runAlertCheck()
		s.isStartupRun = false
		s.logger.Info("Startup jobs completed")
	}()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case t := <-ticker.C:
			s.executeScheduledJobs(t)
		}
	}
}

// executeScheduledJobs runs all jobs that are scheduled for the given time
func (s *Scheduler) executeScheduledJobs(t time.Time) {
	// Skip if we're still running startup jobs
	if s.isStartupRun {
		s.logger.Debug("Skipping scheduled jobs while startup is in progress")
		return
	}

	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	s.logger.WithFields(logrus.Fields{
		"hour":   t.Hour(),
		"minute": t.Minute(),
	}).Debug("Checking scheduled jobs")

	// Geocoding sweep runs nightly at 02:00, before the rematch so new
	// coordinates feed into the same cycle
	if t.Hour() == 2 && t.Minute() == 0 {
		s.logger.WithField("job_type", JobTypeGeocode.String()).Info("Starting scheduled job")
		if err := s.db.UpdateMissingCoordinates(s.geocoder); err != nil {
			s.logger.WithError(err).WithField("job_type", JobTypeGeocode.String()).Error("Scheduled job failed")
		} else {
			s.logger.WithField("job_type", JobTypeGeocode.String()).Info("Scheduled job completed")
		}
	}

	// Full rematch every hour on the hour
	if t.Minute() == 0 {
		s.runRematch()
		s.runAlertCheck()
	}
}

// runRematch recomputes matches for every active prospectus
func (s *Scheduler) runRematch() {
	s.logger.WithField("job_type", JobTypeRematch.String()).Info("Starting scheduled job")

	processed, err := s.matcher.MatchAll()
	if err != nil {
		s.logger.WithError(err).WithField("job_type", JobTypeRematch.String()).Error("Scheduled job failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"job_type":     JobTypeRematch.String(),
		"prospectuses": processed,
	}).Info("Scheduled job completed")
}

// runAlertCheck notifies about high-urgency opportunities that have not
// been alerted on yet. Delivered ids are tracked in memory, so alerts
// repeat at most once per process lifetime.
func (s *Scheduler) runAlertCheck() {
	if s.alertService == nil || !s.alertService.IsEnabled() {
		return
	}

	prospectuses, err := s.db.GetProspectuses(database.ProspectusFilter{Status: models.StatusActive})
	if err != nil {
		s.logger.WithError(err).WithField("job_type", JobTypeAlerts.String()).Error("Failed to load prospectuses")
		return
	}

	grouped, err := s.db.GetMatchesGrouped()
	if err != nil {
		s.logger.WithError(err).WithField("job_type", JobTypeAlerts.String()).Error("Failed to load matches")
		return
	}

	stateByID := make(map[int64]string, len(prospectuses))
	for _, p := range prospectuses {
		stateByID[p.ID] = p.State
	}

	p := pipeline.Build(prospectuses, grouped, time.Now(), pipeline.Options{
		RelevanceThreshold: s.scoringCfg.RelevanceThreshold,
		Urgency:            s.scoringCfg.Urgency,
	})

	filters := s.alertService.Filters()
	for _, op := range p.Opportunities {
		if op.Urgency != urgency.High.String() {
			continue
		}
		if !filters.IsOpportunityAllowed(&op, stateByID[op.ID]) {
			continue
		}

		s.notifiedMu.Lock()
		seen := s.notified[op.ID]
		if !seen {
			s.notified[op.ID] = true
		}
		s.notifiedMu.Unlock()
		if seen {
			continue
		}

		if err := s.alertService.NotifyOpportunity(op); err != nil {
			// Retry on the next cycle
			s.notifiedMu.Lock()
			delete(s.notified, op.ID)
			s.notifiedMu.Unlock()
		}
	}
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
