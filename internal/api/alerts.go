package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"leasehawk/server/internal/alerts"
	"leasehawk/server/internal/models"
)

// GetAlertConfig returns the current alert configuration
func (h *Handler) GetAlertConfig(c *gin.Context) {
	config, err := h.db.GetAlertConfig()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get alert config")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get alert config"})
		return
	}

	if config == nil {
		c.JSON(http.StatusOK, gin.H{
			"is_enabled": false,
			"chat_id":    "",
			"bot_token":  "",
		})
		return
	}

	// Don't send the full bot token back to the client for security
	if len(config.BotToken) > 4 {
		config.BotToken = "••••" + config.BotToken[len(config.BotToken)-4:]
	}
	c.JSON(http.StatusOK, config)
}

// UpdateAlertConfig updates the alert configuration
func (h *Handler) UpdateAlertConfig(c *gin.Context) {
	var request models.AlertConfigRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Basic validation
	if len(request.BotToken) < 20 || !strings.Contains(request.BotToken, ":") {
		h.logger.Error("Invalid bot token format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bot token format. Please check your bot token from @BotFather"})
		return
	}

	if request.ChatID == "" {
		h.logger.Error("Chat ID is required")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chat ID is required"})
		return
	}

	// Test the configuration before saving
	testService := alerts.NewService(h.logger)
	testService.UpdateConfig(&models.AlertConfig{
		BotToken:  request.BotToken,
		ChatID:    request.ChatID,
		IsEnabled: true,
	})

	testMessage := "🔔 Test notification from LeaseHawk\n\nIf you see this message, your alert configuration is working correctly!"
	if err := testService.SendMessage(testMessage); err != nil {
		h.logger.WithError(err).Error("Failed to send test message")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.UpdateAlertConfig(&request); err != nil {
		h.logger.WithError(err).Error("Failed to update alert config")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save configuration to database"})
		return
	}

	// Update the running service configuration
	if config, err := h.db.GetAlertConfig(); err == nil && config != nil {
		h.alertService.UpdateConfig(config)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alert configuration updated successfully"})
}

// TestAlertConfig sends a sample opportunity notification using the
// stored configuration
func (h *Handler) TestAlertConfig(c *gin.Context) {
	config, err := h.db.GetAlertConfig()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get alert config")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get alert configuration"})
		return
	}

	if config == nil || !config.IsEnabled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Alerts are not configured or are disabled"})
		return
	}

	days := 120
	sample := models.Opportunity{
		ID:                  1,
		ProspectusNumber:    "PDC-0001-WA26",
		Agency:              "General Services Administration",
		Location:            "Washington, DC",
		SquareFootage:       45000,
		AnnualValue:         2250000,
		LeaseExpiration:     "2026-12-31",
		DaysUntilExpiration: &days,
		Urgency:             "High",
		MatchCount:          3,
		BestMatchScore:      87.5,
	}

	testService := alerts.NewService(h.logger)
	testService.UpdateConfig(config)

	if err := testService.NotifyOpportunity(sample); err != nil {
		h.logger.WithError(err).Error("Failed to send test notification")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Test notification sent successfully"})
}
