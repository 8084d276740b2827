package api

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"leasehawk/server/config"
	"leasehawk/server/internal/alerts"
	"leasehawk/server/internal/database"
	"leasehawk/server/internal/geocoding"
	"leasehawk/server/internal/geometry"
	"leasehawk/server/internal/matching"
	"leasehawk/server/internal/models"
	"leasehawk/server/internal/pipeline"
)

type Handler struct {
	db           *database.Database
	logger       *logrus.Logger
	geocoder     *geocoding.Geocoder
	matcher      *matching.Manager
	alertService *alerts.Service
	scoringCfg   config.ScoringConfig
}

func NewHandler(db *database.Database, matcher *matching.Manager, geocoder *geocoding.Geocoder, alertService *alerts.Service, scoringCfg config.ScoringConfig, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:           db,
		logger:       logger,
		geocoder:     geocoder,
		matcher:      matcher,
		alertService: alertService,
		scoringCfg:   scoringCfg,
	}
}

func (h *Handler) GetStatus(c *gin.Context) {
	prospectuses, err := h.db.CountProspectuses("")
	if err != nil {
		h.logger.WithError(err).Error("Failed to count prospectuses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read status"})
		return
	}

	properties, err := h.db.CountProperties()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read status"})
		return
	}

	matches, err := h.db.CountMatches()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count matches")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service":      "leasehawk",
		"version":      "1.0.0",
		"status":       "ok",
		"prospectuses": prospectuses,
		"properties":   properties,
		"matches":      matches,
	})
}

func (h *Handler) GetProspectuses(c *gin.Context) {
	filter := database.ProspectusFilter{
		Agency: c.Query("agency"),
		State:  c.Query("state"),
		Status: c.Query("status"),
	}
	if minValue := c.Query("min_value"); minValue != "" {
		v, err := strconv.ParseFloat(minValue, 64)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_value parameter"})
			return
		}
		filter.MinValue = v
	}

	prospectuses, err := h.db.GetProspectuses(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get prospectuses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get prospectuses"})
		return
	}

	c.JSON(http.StatusOK, prospectuses)
}

func (h *Handler) CreateProspectus(c *gin.Context) {
	var p models.Prospectus
	if err := c.ShouldBindJSON(&p); err != nil {
		h.logger.WithError(err).Error("Failed to parse prospectus request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if p.ProspectusNumber == "" || p.Agency == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prospectus_number and agency are required"})
		return
	}

	id, err := h.db.InsertProspectus(&p)
	if err != nil {
		h.logger.WithError(err).Error("Failed to insert prospectus")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save prospectus"})
		return
	}
	p.ID = id

	// Resolve coordinates in the background so the write path stays fast
	if p.Latitude == nil && p.Location != "" {
		go h.geocodeProspectus(id, p.Location, p.State)
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":                id,
		"prospectus_number": p.ProspectusNumber,
		"status":            "created",
	})
}

func (h *Handler) geocodeProspectus(id int64, location, state string) {
	lat, lon, err := h.geocoder.GeocodeLocation(location, state)
	if err != nil {
		h.logger.WithError(err).WithField("prospectus_id", id).Warn("Failed to geocode prospectus")
		return
	}

	if err := h.db.UpdateProspectusCoordinates(id, lat, lon); err != nil {
		h.logger.WithError(err).WithField("prospectus_id", id).Error("Failed to store coordinates")
	}
}

func (h *Handler) GetProperties(c *gin.Context) {
	filter := database.PropertyFilter{
		City:  c.Query("city"),
		State: c.Query("state"),
	}
	if minSqft := c.Query("min_sqft"); minSqft != "" {
		v, err := strconv.Atoi(minSqft)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_sqft parameter"})
			return
		}
		filter.MinSqft = v
	}

	properties, err := h.db.GetProperties(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get properties"})
		return
	}

	c.JSON(http.StatusOK, properties)
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var p models.Property
	if err := c.ShouldBindJSON(&p); err != nil {
		h.logger.WithError(err).Error("Failed to parse property request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if p.Address == "" || p.City == "" || p.State == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address, city and state are required"})
		return
	}

	id, err := h.db.InsertProperty(&p)
	if err != nil {
		h.logger.WithError(err).Error("Failed to insert property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save property"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":     id,
		"status": "created",
	})
}

func (h *Handler) GetPipeline(c *gin.Context) {
	sortParam := c.DefaultQuery("sort", "")
	criterion, err := pipeline.ParseSortCriterion(sortParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.buildPipeline(criterion)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build pipeline")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build pipeline"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) buildPipeline(criterion pipeline.SortCriterion) (models.Pipeline, error) {
	prospectuses, err := h.db.GetProspectuses(database.ProspectusFilter{Status: models.StatusActive})
	if err != nil {
		return models.Pipeline{}, err
	}

	grouped, err := h.db.GetMatchesGrouped()
	if err != nil {
		return models.Pipeline{}, err
	}

	return pipeline.Build(prospectuses, grouped, time.Now(), pipeline.Options{
		Sort:               criterion,
		RelevanceThreshold: h.scoringCfg.RelevanceThreshold,
		Urgency:            h.scoringCfg.Urgency,
	}), nil
}

func (h *Handler) GetDashboardStats(c *gin.Context) {
	p, err := h.buildPipeline(pipeline.SortDefault)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build pipeline stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get dashboard stats"})
		return
	}

	properties, err := h.db.CountProperties()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get dashboard stats"})
		return
	}

	matches, err := h.db.CountMatches()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count matches")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get dashboard stats"})
		return
	}

	topScore, err := h.db.GetTopMatchScore()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get top match score")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, models.DashboardStats{
		TotalOpportunities: p.Summary.TotalOpportunities,
		TotalProperties:    properties,
		TotalMatches:       matches,
		PipelineValue:      p.Summary.TotalAnnualValue,
		HighUrgencyCount:   p.Summary.HighUrgency,
		MediumUrgencyCount: p.Summary.MediumUrgency,
		TopMatchScore:      topScore,
	})
}

func (h *Handler) GetMap(c *gin.Context) {
	properties, err := h.db.GetProperties(database.PropertyFilter{})
	if err != nil {
		h.logger.WithError(err).Error("Failed to get properties for map")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get map data"})
		return
	}

	bestScores, err := h.db.GetBestScoresByProperty()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get best scores for map")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get map data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": geometry.PropertyCollection(properties, bestScores),
		"markets":    config.SupportedMarkets,
	})
}

func (h *Handler) MatchProspectus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("prospectus_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prospectus id"})
		return
	}

	matches, err := h.matcher.MatchProspectus(id)
	if err != nil {
		h.logger.WithError(err).WithField("prospectus_id", id).Error("Failed to run matching")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prospectus_id": id,
		"match_count":   len(matches),
		"matches":       matches,
	})
}

func (h *Handler) MatchAll(c *gin.Context) {
	processed, err := h.matcher.MatchAll()
	if err != nil {
		h.logger.WithError(err).Error("Failed to run full matching")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run matching"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                 "success",
		"prospectuses_processed": processed,
	})
}

func (h *Handler) UpdateCoordinates(c *gin.Context) {
	err := h.db.UpdateMissingCoordinates(h.geocoder)
	if err != nil {
		h.logger.WithError(err).Error("Failed to update coordinates")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coordinates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "Coordinates update process started",
	})
}
