package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"leasehawk/server/internal/models"
)

// GetAlertConfig returns the stored alert configuration, or nil when
// none has been saved yet.
func (d *Database) GetAlertConfig() (*models.AlertConfig, error) {
	var config models.AlertConfig
	var botToken, chatID, filters sql.NullString
	var createdAt, updatedAt sql.NullString

	err := d.db.QueryRow(`
		SELECT id, is_enabled, bot_token, chat_id, filters, created_at, updated_at
		FROM alert_config
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&config.ID, &config.IsEnabled, &botToken, &chatID, &filters, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query alert config: %v", err)
	}

	if botToken.Valid {
		config.BotToken = botToken.String
	}
	if chatID.Valid {
		config.ChatID = chatID.String
	}
	if filters.Valid && filters.String != "" {
		var f models.AlertFilters
		if err := json.Unmarshal([]byte(filters.String), &f); err == nil {
			config.Filters = &f
		}
	}
	if createdAt.Valid {
		config.CreatedAt = parseTimestamp(createdAt.String)
	}
	if updatedAt.Valid {
		config.UpdatedAt = parseTimestamp(updatedAt.String)
	}

	return &config, nil
}

// UpdateAlertConfig replaces the alert configuration.
func (d *Database) UpdateAlertConfig(request *models.AlertConfigRequest) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	// Single-row table: drop any previous configuration
	if _, err := tx.Exec("DELETE FROM alert_config"); err != nil {
		return fmt.Errorf("failed to clear alert config: %v", err)
	}

	var filters interface{}
	if request.Filters != nil {
		data, err := json.Marshal(request.Filters)
		if err != nil {
			return fmt.Errorf("failed to marshal alert filters: %v", err)
		}
		filters = string(data)
	}

	_, err = tx.Exec(`
		INSERT INTO alert_config (is_enabled, bot_token, chat_id, filters)
		VALUES (?, ?, ?, ?)
	`, request.IsEnabled, request.BotToken, request.ChatID, filters)
	if err != nil {
		return fmt.Errorf("failed to insert alert config: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}
