package models

import "time"

// AlertConfig stores the Telegram bot credentials and basic settings
// for opportunity notifications.
type AlertConfig struct {
	ID        int64         `json:"id"`
	IsEnabled bool          `json:"is_enabled"`
	BotToken  string        `json:"bot_token"`
	ChatID    string        `json:"chat_id"`
	Filters   *AlertFilters `json:"filters,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// AlertConfigRequest is used when updating the configuration.
type AlertConfigRequest struct {
	IsEnabled bool          `json:"is_enabled"`
	BotToken  string        `json:"bot_token"`
	ChatID    string        `json:"chat_id"`
	Filters   *AlertFilters `json:"filters,omitempty"`
}

// AlertFilters stores the notification filter settings.
type AlertFilters struct {
	MinAnnualValue *float64 `json:"min_annual_value"`
	MinMatchScore  *float64 `json:"min_match_score"`
	Agencies       []string `json:"agencies"`
	States         []string `json:"states"`
}

// IsOpportunityAllowed checks if an opportunity matches the filter criteria.
func (f *AlertFilters) IsOpportunityAllowed(op *Opportunity, state string) bool {
	if f == nil {
		return true // No filters means allow all
	}

	if f.MinAnnualValue != nil && op.AnnualValue < *f.MinAnnualValue {
		return false
	}

	if f.MinMatchScore != nil && op.BestMatchScore < *f.MinMatchScore {
		return false
	}

	if len(f.Agencies) > 0 {
		allowed := false
		for _, agency := range f.Agencies {
			if agency == op.Agency {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}

	if len(f.States) > 0 {
		allowed := false
		for _, s := range f.States {
			if s == state {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}

	return true
}
