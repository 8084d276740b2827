package pipeline

import (
	"fmt"
	"math"
	"sort"
	"time"

	"leasehawk/server/config"
	"leasehawk/server/internal/models"
	"leasehawk/server/internal/urgency"
)

// SortCriterion selects the pipeline ordering. The default keeps the
// caller's insertion order.
type SortCriterion string

const (
	SortDefault SortCriterion = ""
	SortCreated SortCriterion = "created"
	SortValue   SortCriterion = "value"
	SortSize    SortCriterion = "size"
	SortMatches SortCriterion = "matches"
	SortUrgency SortCriterion = "urgency"
)

// ParseSortCriterion validates a sort query parameter.
func ParseSortCriterion(s string) (SortCriterion, error) {
	switch SortCriterion(s) {
	case SortDefault, SortCreated, SortValue, SortSize, SortMatches, SortUrgency:
		return SortCriterion(s), nil
	default:
		return SortDefault, fmt.Errorf("unknown sort criterion: %q", s)
	}
}

// Options configure one aggregation pass.
type Options struct {
	Sort               SortCriterion
	RelevanceThreshold float64
	Urgency            config.UrgencyThresholds
}

// Build joins prospectuses with their matches into the dashboard
// pipeline. Every prospectus appears in the output, with zeroed match
// data when it has no matches; the summary value is independent of
// match data. Pure in-memory computation over the provided snapshots.
func Build(prospectuses []models.Prospectus, matchesByProspectus map[int64][]models.Match, now time.Time, opts Options) models.Pipeline {
	opportunities := make([]models.Opportunity, 0, len(prospectuses))
	summary := models.PipelineSummary{}

	for _, p := range prospectuses {
		op := buildOpportunity(p, matchesByProspectus[p.ID], now, opts)

		switch op.Urgency {
		case urgency.High.String():
			summary.HighUrgency++
		case urgency.Medium.String():
			summary.MediumUrgency++
		default:
			summary.LowUrgency++
		}

		summary.TotalAnnualValue += p.EstimatedAnnualCost
		opportunities = append(opportunities, op)
	}

	summary.TotalOpportunities = len(opportunities)
	sortOpportunities(opportunities, opts.Sort)

	return models.Pipeline{
		Summary:       summary,
		Opportunities: opportunities,
	}
}

func buildOpportunity(p models.Prospectus, matches []models.Match, now time.Time, opts Options) models.Opportunity {
	op := models.Opportunity{
		ID:                  p.ID,
		ProspectusNumber:    p.ProspectusNumber,
		Agency:              p.Agency,
		Location:            formatLocation(p),
		SquareFootage:       p.EstimatedSqft,
		AnnualValue:         p.EstimatedAnnualCost,
		LeaseExpiration:     p.LeaseExpiration.String(),
		Urgency:             urgency.Classify(p.LeaseExpiration, now, opts.Urgency).String(),
		ParkingRequired:     p.ParkingRequired,
		SpecialRequirements: truncate(p.SpecialRequirements, 100),
	}

	if days, known := p.LeaseExpiration.DaysUntil(now); known {
		op.DaysUntilExpiration = &days
	}

	var best, sum float64
	for _, m := range matches {
		if m.TotalScore <= opts.RelevanceThreshold {
			continue
		}
		op.MatchCount++
		sum += m.TotalScore
		if m.TotalScore > best {
			best = m.TotalScore
		}
	}
	op.BestMatchScore = round1(best)
	if op.MatchCount > 0 {
		op.AvgMatchScore = round1(sum / float64(op.MatchCount))
	}

	return op
}

// sortOpportunities stable-sorts by the requested criterion so that
// ties keep the insertion order. "created" is the insertion order
// itself, since prospectuses load oldest-first. Urgency sorting mirrors
// the dashboard: High first, then by annual value descending.
func sortOpportunities(ops []models.Opportunity, criterion SortCriterion) {
	switch criterion {
	case SortValue:
		sort.SliceStable(ops, func(i, j int) bool {
			return ops[i].AnnualValue > ops[j].AnnualValue
		})
	case SortSize:
		sort.SliceStable(ops, func(i, j int) bool {
			return ops[i].SquareFootage > ops[j].SquareFootage
		})
	case SortMatches:
		sort.SliceStable(ops, func(i, j int) bool {
			return ops[i].MatchCount > ops[j].MatchCount
		})
	case SortUrgency:
		sort.SliceStable(ops, func(i, j int) bool {
			ri, rj := urgencyRank(ops[i].Urgency), urgencyRank(ops[j].Urgency)
			if ri != rj {
				return ri < rj
			}
			return ops[i].AnnualValue > ops[j].AnnualValue
		})
	}
}

func urgencyRank(tier string) int {
	switch tier {
	case urgency.High.String():
		return 0
	case urgency.Medium.String():
		return 1
	default:
		return 2
	}
}

func formatLocation(p models.Prospectus) string {
	if p.State == "" {
		return p.Location
	}
	return fmt.Sprintf("%s, %s", p.Location, p.State)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
