// Package analyzer turns a parsed (possibly merged) statement into
// decision-ready card metrics: category breakdown, utilization, health
// score, monthly series and narrative insights.
package analyzer

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cardsense/statement-analyzer/internal/categorizer"
	"github.com/cardsense/statement-analyzer/internal/models"
)

// DefaultCreditLimit stands in when a statement yielded no limit, so
// utilization stays computable. Downstream consumers should treat the
// resulting percentage as a lower-confidence signal.
const DefaultCreditLimit = 100_000

// RewardRate is the assumed flat cashback-point rate on spend.
const RewardRate = 0.01

// Options carries analysis tunables. The zero value uses the defaults.
type Options struct {
	DefaultCreditLimit float64
	RewardRate         float64
}

func (o Options) withDefaults() Options {
	if o.DefaultCreditLimit <= 0 {
		o.DefaultCreditLimit = DefaultCreditLimit
	}
	if o.RewardRate <= 0 {
		o.RewardRate = RewardRate
	}
	return o
}

// Analyze computes the full CardAnalysis for one statement. cardID is
// assigned by the caller (sequential per batch); it is not derived from
// statement content.
func Analyze(stmt models.ParsedStatement, cardID string) models.CardAnalysis {
	return AnalyzeWithOptions(stmt, cardID, Options{})
}

// AnalyzeWithOptions is Analyze with explicit tunables.
func AnalyzeWithOptions(stmt models.ParsedStatement, cardID string, opts Options) models.CardAnalysis {
	opts = opts.withDefaults()

	categorySpend := aggregateCategories(stmt.Transactions, stmt.TotalSpend)

	effectiveLimit := stmt.CreditLimit
	if effectiveLimit <= 0 {
		effectiveLimit = opts.DefaultCreditLimit
	}
	utilization := stmt.TotalSpend / effectiveLimit * 100

	numMonths := periodCount(stmt.StatementPeriod)
	avgMonthlySpend := stmt.TotalSpend / float64(numMonths)

	return models.CardAnalysis{
		ID:                 cardID,
		Name:               stmt.CardName,
		Limit:              effectiveLimit,
		AnnualFee:          0, // not derivable from statement text
		CurrentUtilization: round1(utilization),
		LastMonthSpend:     avgMonthlySpend,
		RewardsEarned:      math.Floor(stmt.TotalSpend * opts.RewardRate),
		HealthScore:        healthScore(utilization, stmt.Transactions),
		CategorySpend:      categorySpend,
		MonthlyData:        monthlySeries(numMonths, avgMonthlySpend, utilization, opts.RewardRate),
		Insights:           insights(categorySpend, utilization, stmt.Transactions),
	}
}

// aggregateCategories groups retained transactions by category, sorts
// descending by amount (stable, so ties keep grouping order) and keeps
// the top 5. Amounts beyond the top 5 stay in totalSpend but drop out
// of the category view.
func aggregateCategories(txns []models.Transaction, totalSpend float64) []models.CategorySpend {
	totals := make(map[string]float64)
	var order []string
	for _, t := range txns {
		category := t.Category
		if category == "" {
			category = categorizer.Others
		}
		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}
		totals[category] += t.Amount
	}

	spend := make([]models.CategorySpend, 0, len(order))
	for _, category := range order {
		amount := totals[category]
		pct := 0.0
		if totalSpend > 0 {
			pct = amount / totalSpend * 100
		}
		spend = append(spend, models.CategorySpend{
			Category:   category,
			Amount:     amount,
			Percentage: pct,
			Color:      categorizer.Color(category),
		})
	}
	sort.SliceStable(spend, func(i, j int) bool {
		return spend[i].Amount > spend[j].Amount
	})
	if len(spend) > 5 {
		spend = spend[:5]
	}
	return spend
}

// healthScore is a 0-100 behavioral signal. Utilization tiers penalize
// affordability risk, a volatility penalty flags erratic large-ticket
// spending, and a consistency bonus rewards steady observable usage.
func healthScore(utilization float64, txns []models.Transaction) int {
	score := 100.0

	switch {
	case utilization > 80:
		score -= 30
	case utilization > 60:
		score -= 20
	case utilization > 40:
		score -= 10
	}

	if len(txns) > 0 {
		var sum float64
		for _, t := range txns {
			sum += t.Amount
		}
		mean := sum / float64(len(txns))
		large := 0
		for _, t := range txns {
			if t.Amount > mean*3 {
				large++
			}
		}
		if large > 5 {
			score -= 10
		}
	}

	if len(txns) > 20 && len(txns) < 100 {
		score += 5
	}

	return int(math.Max(0, math.Min(100, math.Round(score))))
}

var monthNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// monthlySeries spreads the merged totals evenly across N synthetic
// periods. True per-period boundaries are unrecoverable after merging,
// so the series approximates a uniform distribution; labels step
// backward from the current calendar month and the result is returned
// in chronological order. Capped at 12 periods.
func monthlySeries(numMonths int, avgSpend, utilization, rewardRate float64) []models.MonthlyData {
	n := numMonths
	if n > 12 {
		n = 12
	}
	current := int(time.Now().Month()) - 1

	series := make([]models.MonthlyData, 0, n)
	for i := 0; i < n; i++ {
		series = append(series, models.MonthlyData{
			Month:       monthNames[((current-i)%12+12)%12],
			Spend:       avgSpend,
			Utilization: round1(utilization),
			Rewards:     math.Floor(avgSpend * rewardRate),
		})
	}
	// reverse into chronological order
	for i, j := 0, len(series)-1; i < j; i, j = i+1, j-1 {
		series[i], series[j] = series[j], series[i]
	}
	return series
}

// highValueThreshold is the average ticket size above which a card is
// flagged for high-value transactions.
const highValueThreshold = 5000

// insights builds up to four narrative strings in a fixed severity
// order: affordability risk first, then concentration, then volume,
// then ticket size.
func insights(categorySpend []models.CategorySpend, utilization float64, txns []models.Transaction) []string {
	var out []string

	if utilization > 70 {
		out = append(out, fmt.Sprintf("High utilization at %.1f%% - consider paying down balance", utilization))
	} else if utilization < 30 {
		out = append(out, fmt.Sprintf("Healthy utilization at %.1f%% - plenty of credit buffer", utilization))
	}

	if len(categorySpend) > 0 {
		top := categorySpend[0]
		out = append(out, fmt.Sprintf("Highest spending in %s (%.1f%%)", top.Category, top.Percentage))
	}

	if len(txns) > 50 {
		out = append(out, fmt.Sprintf("Very active card with %d transactions", len(txns)))
	} else if len(txns) < 10 {
		out = append(out, fmt.Sprintf("Low usage with %d transactions", len(txns)))
	}

	if len(txns) > 0 {
		var sum float64
		for _, t := range txns {
			sum += t.Amount
		}
		avg := sum / float64(len(txns))
		if avg > highValueThreshold {
			out = append(out, fmt.Sprintf("High-value transactions averaging ₹%.0f", avg))
		}
	}

	if len(out) > 4 {
		out = out[:4]
	}
	return out
}

// periodCount reads the merged period count out of a statement period
// label. The merger writes "N months"; anything else is one period.
func periodCount(period string) int {
	if !strings.Contains(period, "months") {
		return 1
	}
	fields := strings.Fields(period)
	if len(fields) == 0 {
		return 1
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
