package alerts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"leasehawk/server/internal/database"
	"leasehawk/server/internal/models"
)

// Service delivers opportunity notifications over the Telegram Bot API.
type Service struct {
	logger *logrus.Logger
	client *http.Client
	config *models.AlertConfig
	db     *database.Database
}

func NewService(logger *logrus.Logger) *Service {
	return &Service{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *Service) UpdateConfig(config *models.AlertConfig) {
	s.config = config
}

func (s *Service) SetDatabase(db *database.Database) {
	s.db = db
}

// IsEnabled reports whether a usable configuration is loaded.
func (s *Service) IsEnabled() bool {
	return s.config != nil && s.config.IsEnabled
}

// Filters returns the configured notification filters, nil when unset.
func (s *Service) Filters() *models.AlertFilters {
	if s.config == nil {
		return nil
	}
	return s.config.Filters
}

// SendMessage sends a message to the configured Telegram chat
func (s *Service) SendMessage(message string) error {
	if s.config == nil || !s.config.IsEnabled {
		return nil
	}

	if s.config.BotToken == "" {
		return errors.New("Telegram bot token is not configured")
	}

	if s.config.ChatID == "" {
		return errors.New("Telegram chat ID is not configured")
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.config.BotToken)
	payload := map[string]interface{}{
		"chat_id":    s.config.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %v", err)
	}

	resp, err := s.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("invalid bot token - please check your token from @BotFather")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the user or chat")
		case http.StatusNotFound:
			return errors.New("bot not found - please check your token from @BotFather")
		default:
			return fmt.Errorf("Telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	return nil
}

// NotifyOpportunity sends a notification about an urgent opportunity.
func (s *Service) NotifyOpportunity(op models.Opportunity) error {
	if s.config == nil || !s.config.IsEnabled {
		return nil
	}

	expiration := op.LeaseExpiration
	if op.DaysUntilExpiration != nil {
		if *op.DaysUntilExpiration < 0 {
			expiration = fmt.Sprintf("%s (expired %d days ago)", op.LeaseExpiration, -*op.DaysUntilExpiration)
		} else {
			expiration = fmt.Sprintf("%s (in %d days)", op.LeaseExpiration, *op.DaysUntilExpiration)
		}
	}

	bestMatch := "No matches yet"
	if op.MatchCount > 0 {
		bestMatch = fmt.Sprintf("%.1f (%d candidate properties)", op.BestMatchScore, op.MatchCount)
	}

	message := fmt.Sprintf(
		"<b>🔥 High Urgency Opportunity</b>\n\n"+
			"📋 %s\n"+
			"🏛️ %s\n"+
			"📍 %s\n"+
			"📐 %s sqft\n"+
			"💰 $%s/year\n"+
			"📅 Expires: %s\n"+
			"🎯 Best match: %s",
		op.ProspectusNumber,
		op.Agency,
		op.Location,
		formatInt(op.SquareFootage),
		formatInt(int(op.AnnualValue)),
		expiration,
		bestMatch,
	)

	if err := s.SendMessage(message); err != nil {
		s.logger.WithError(err).WithField("prospectus_number", op.ProspectusNumber).Error("Failed to send opportunity alert")
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"prospectus_number": op.ProspectusNumber,
		"urgency":           op.Urgency,
	}).Info("Opportunity alert sent")
	return nil
}

// formatInt renders an integer with thousands separators for messages.
func formatInt(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return sign + s
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return sign + string(out)
}
