package matching

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasehawk/server/config"
	"leasehawk/server/internal/database"
	"leasehawk/server/internal/models"
	"leasehawk/server/internal/queue"
	"leasehawk/server/internal/scoring"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

type batchCollector struct {
	mu      sync.Mutex
	batches [][]*models.Match
}

func (c *batchCollector) collect(batch []*models.Match) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, batch)
	return nil
}

func (c *batchCollector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batches)
}

func setupManager(t *testing.T) (*Manager, *database.Database, *batchCollector) {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	q := queue.NewMatchQueue(10, logger)
	collector := &batchCollector{}
	q.Subscribe(collector.collect)
	q.Start()
	t.Cleanup(func() { q.Close() })

	engine := scoring.NewEngine(config.DefaultScoringConfig())
	return NewManager(db, engine, q, logger), db, collector
}

func TestMatchProspectus(t *testing.T) {
	manager, db, collector := setupManager(t)

	pID, err := db.InsertProspectus(&models.Prospectus{
		ProspectusNumber:  "PDC-0001-WA26",
		Agency:            "GSA",
		Location:          "Washington",
		State:             "DC",
		EstimatedSqft:     50000,
		RentalRatePerSqft: floatPtr(45.00),
		ParkingRequired:   100,
		Latitude:          floatPtr(38.9072),
		Longitude:         floatPtr(-77.0369),
	})
	require.NoError(t, err)

	// A strong candidate and a weak one
	_, err = db.InsertProperty(&models.Property{
		Address: "1100 First St NE", City: "Washington", State: "DC",
		AvailableSqft:     intPtr(50000),
		AskingRentPerSqft: floatPtr(44.00),
		ParkingSpaces:     intPtr(120),
		Latitude:          floatPtr(38.9050),
		Longitude:         floatPtr(-77.0050),
	})
	require.NoError(t, err)
	_, err = db.InsertProperty(&models.Property{
		Address: "10 Far Away Blvd", City: "Baltimore", State: "MD",
		AvailableSqft:     intPtr(20000),
		AskingRentPerSqft: floatPtr(80.00),
		Latitude:          floatPtr(39.2904),
		Longitude:         floatPtr(-76.6122),
	})
	require.NoError(t, err)

	matches, err := manager.MatchProspectus(pID)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Sorted by total score, best first
	assert.GreaterOrEqual(t, matches[0].TotalScore, matches[1].TotalScore)
	assert.Greater(t, matches[0].TotalScore, 80.0)
	assert.Equal(t, pID, matches[0].ProspectusID)

	// The batch lands on the persistence queue
	assert.Eventually(t, func() bool {
		return collector.count() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMatchProspectusNotFound(t *testing.T) {
	manager, _, _ := setupManager(t)

	_, err := manager.MatchProspectus(999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMatchAll(t *testing.T) {
	manager, db, collector := setupManager(t)

	for _, number := range []string{"A", "B"} {
		_, err := db.InsertProspectus(&models.Prospectus{
			ProspectusNumber: number,
			Agency:           "GSA",
			EstimatedSqft:    25000,
		})
		require.NoError(t, err)
	}
	// Cancelled prospectuses are skipped
	_, err := db.InsertProspectus(&models.Prospectus{
		ProspectusNumber: "C",
		Agency:           "GSA",
		Status:           models.StatusCancelled,
	})
	require.NoError(t, err)

	_, err = db.InsertProperty(&models.Property{
		Address: "one", City: "Denver", State: "CO",
		AvailableSqft: intPtr(25000),
	})
	require.NoError(t, err)

	processed, err := manager.MatchAll()
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	assert.Eventually(t, func() bool {
		return collector.count() == 2
	}, 2*time.Second, 10*time.Millisecond)
}
