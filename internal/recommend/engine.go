// Package recommend routes a candidate purchase across analyzed cards.
// Every call recomputes from the supplied CardAnalysis set; nothing is
// cached.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cardsense/statement-analyzer/internal/models"
)

// Priority selects the ranking strategy for a recommendation.
type Priority string

const (
	PriorityRewards Priority = "rewards"
	PrioritySafety  Priority = "safety"
	PriorityBalance Priority = "balance"
)

// utilizationCeiling is the projected post-purchase utilization a card
// must stay below to be a candidate at all.
const utilizationCeiling = 80

// Composite weights for balance mode: category fit matters most, then
// headroom, then overall track record.
const (
	weightCategoryFit = 0.4
	weightHeadroom    = 0.3
	weightHealth      = 0.3
)

// Request is a candidate purchase to route.
type Request struct {
	Category string   `json:"category"`
	Amount   float64  `json:"amount"`
	Priority Priority `json:"priority"`
}

type candidate struct {
	card      models.CardAnalysis
	projected float64 // post-purchase utilization, percent
	catAmount float64 // historical spend in the matching category
	catPct    float64 // share of spend in the matching category
	catName   string
	score     float64 // balance-mode composite
}

// Recommend selects the best card for a purchase plus one ranked
// alternative. Returns ErrMissingInput for an incomplete request and
// ErrNoSafeCard when no card keeps projected utilization under the
// ceiling.
func Recommend(req Request, cards []models.CardAnalysis) (*models.Recommendation, error) {
	if strings.TrimSpace(req.Category) == "" || req.Amount <= 0 {
		return nil, models.ErrMissingInput
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityBalance
	}

	var candidates []candidate
	for _, card := range cards {
		projected := projectedUtilization(card, req.Amount)
		if projected >= utilizationCeiling {
			continue
		}
		c := candidate{card: card, projected: projected}
		c.catAmount, c.catPct, c.catName = categoryMatch(card, req.Category)
		c.score = weightCategoryFit*c.catPct +
			weightHeadroom*(100-card.CurrentUtilization) +
			weightHealth*float64(card.HealthScore)
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: a ₹%.0f purchase would push every card past %d%% utilization",
			models.ErrNoSafeCard, req.Amount, utilizationCeiling)
	}

	// Stable sorts: ties keep input order.
	switch priority {
	case PriorityRewards:
		// headroom breaks category-spend ties, which also decides the
		// winner when no card has history in the category
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].catAmount != candidates[j].catAmount {
				return candidates[i].catAmount > candidates[j].catAmount
			}
			return candidates[i].card.CurrentUtilization < candidates[j].card.CurrentUtilization
		})
	case PrioritySafety:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].card.CurrentUtilization < candidates[j].card.CurrentUtilization
		})
	default:
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].score > candidates[j].score
		})
	}

	best := candidates[0]
	rec := &models.Recommendation{
		Card:      best.card,
		Reasoning: reasoning(priority, req, best),
	}

	if len(candidates) > 1 {
		second := candidates[1]
		rec.Alternatives = []models.Alternative{{
			Card: second.card,
			Reason: fmt.Sprintf("Also safe for this purchase, projected utilization %.1f%%",
				second.projected),
		}}
	}

	return rec, nil
}

// projectedUtilization is the post-purchase utilization percentage.
func projectedUtilization(card models.CardAnalysis, amount float64) float64 {
	if card.Limit <= 0 {
		return 100
	}
	balance := card.CurrentUtilization / 100 * card.Limit
	return (balance + amount) / card.Limit * 100
}

// categoryMatch finds the card's spend in the requested category using
// a case-insensitive substring match against category names.
func categoryMatch(card models.CardAnalysis, category string) (amount, pct float64, name string) {
	want := strings.ToLower(category)
	for _, cs := range card.CategorySpend {
		have := strings.ToLower(cs.Category)
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return cs.Amount, cs.Percentage, cs.Category
		}
	}
	return 0, 0, ""
}

func reasoning(priority Priority, req Request, best candidate) []string {
	var out []string
	switch priority {
	case PriorityRewards:
		if best.catAmount > 0 {
			out = append(out, fmt.Sprintf("Highest historical spend in %s at ₹%.0f - strongest rewards fit for this purchase",
				best.catName, best.catAmount))
		} else {
			out = append(out, fmt.Sprintf("No card has %s spending history; %s has the most headroom among them",
				req.Category, best.card.Name))
		}
	case PrioritySafety:
		out = append(out, fmt.Sprintf("Lowest current utilization at %.1f%%",
			best.card.CurrentUtilization))
	default:
		out = append(out, fmt.Sprintf("Best overall fit: %.1f%% of spend in %s, %.1f%% utilization, health score %d",
			best.catPct, req.Category, best.card.CurrentUtilization, best.card.HealthScore))
	}
	out = append(out, fmt.Sprintf("A ₹%.0f purchase keeps utilization at %.1f%%, under the %d%% safety ceiling",
		req.Amount, best.projected, utilizationCeiling))
	return out
}
