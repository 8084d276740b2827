package matching

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"leasehawk/server/internal/database"
	"leasehawk/server/internal/models"
	"leasehawk/server/internal/queue"
	"leasehawk/server/internal/scoring"
)

// Manager runs match computations: it loads a prospectus and the
// candidate properties, scores every pair and hands the results to the
// queue for persistence. Runs are serialized; the scoring itself is
// pure and side-effect-free.
type Manager struct {
	db     *database.Database
	engine *scoring.Engine
	queue  *queue.MatchQueue
	logger *logrus.Logger
	mu     sync.Mutex
}

// NewManager creates a new match manager
func NewManager(db *database.Database, engine *scoring.Engine, q *queue.MatchQueue, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Manager{
		db:     db,
		engine: engine,
		queue:  q,
		logger: logger,
	}
}

// MatchProspectus recomputes the matches for one prospectus against
// every stored property. The scored matches are returned sorted by
// total score descending and queued for upserting.
func (m *Manager) MatchProspectus(prospectusID int64) ([]models.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prospectus, err := m.db.GetProspectusByID(prospectusID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prospectus: %w", err)
	}
	if prospectus == nil {
		return nil, fmt.Errorf("prospectus %d not found", prospectusID)
	}

	properties, err := m.db.GetProperties(database.PropertyFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}

	matches := m.scorePairs(*prospectus, properties)

	if err := m.enqueue(matches); err != nil {
		return nil, err
	}

	m.logger.WithFields(logrus.Fields{
		"prospectus_id":     prospectusID,
		"prospectus_number": prospectus.ProspectusNumber,
		"properties_scored": len(properties),
	}).Info("Match run completed")

	return matches, nil
}

// MatchAll recomputes matches for every active prospectus. Returns the
// number of prospectuses processed.
func (m *Manager) MatchAll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prospectuses, err := m.db.GetProspectuses(database.ProspectusFilter{Status: models.StatusActive})
	if err != nil {
		return 0, fmt.Errorf("failed to load prospectuses: %w", err)
	}

	properties, err := m.db.GetProperties(database.PropertyFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to load properties: %w", err)
	}

	for _, p := range prospectuses {
		matches := m.scorePairs(p, properties)
		if err := m.enqueue(matches); err != nil {
			return 0, err
		}
	}

	m.logger.WithFields(logrus.Fields{
		"prospectuses": len(prospectuses),
		"properties":   len(properties),
	}).Info("Full match run completed")

	return len(prospectuses), nil
}

func (m *Manager) scorePairs(p models.Prospectus, properties []models.Property) []models.Match {
	matches := make([]models.Match, 0, len(properties))
	for _, prop := range properties {
		breakdown := m.engine.Score(p, prop)
		matches = append(matches, models.Match{
			ProspectusID:  p.ID,
			PropertyID:    prop.ID,
			LocationScore: breakdown.LocationScore,
			SizeScore:     breakdown.SizeScore,
			PriceScore:    breakdown.PriceScore,
			ParkingScore:  breakdown.ParkingScore,
			TotalScore:    breakdown.TotalScore,
			Notes:         strings.Join(breakdown.Notes, "; "),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].TotalScore > matches[j].TotalScore
	})
	return matches
}

func (m *Manager) enqueue(matches []models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	batch := make([]*models.Match, len(matches))
	for i := range matches {
		c := matches[i]
		batch[i] = &c
	}

	if err := m.queue.Push(batch); err != nil {
		return fmt.Errorf("failed to queue match batch: %w", err)
	}
	return nil
}
