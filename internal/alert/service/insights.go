package service

import (
	"github.com/shopspring/decimal"
	alertdomain "github.com/smallbiznis/ecoai/internal/alert/domain"
	"github.com/smallbiznis/ecoai/internal/config"
)

// snapshot is the state the insight rules are evaluated against.
type snapshot struct {
	Region           string
	MonthToDateAiKwh decimal.NullDecimal
	Engine           config.EngineConfig
}

type insightRule struct {
	applies func(snapshot) bool
	insight alertdomain.Insight
}

func always(snapshot) bool { return true }

var insightRules = []insightRule{
	{
		applies: func(s snapshot) bool { return s.Engine.IsHighIntensityRegion(s.Region) },
		insight: alertdomain.Insight{
			Category:    alertdomain.CategoryRegion,
			Title:       "Consider Greener Regions",
			Description: "Your workloads are running in a high carbon-intensity region. Moving to EU or Nordic regions could significantly reduce emissions.",
			Impact:      "Up to 60% carbon reduction possible",
			Priority:    alertdomain.PriorityHigh,
			Actionable:  "Evaluate moving non-latency-critical workloads to EU-NORTH or NO regions",
		},
	},
	{
		applies: always,
		insight: alertdomain.Insight{
			Category:    alertdomain.CategoryBatching,
			Title:       "Batch AI Workloads",
			Description: "Running AI tasks in batches during off-peak hours can improve efficiency and potentially reduce costs.",
			Impact:      "10-20% cost savings possible",
			Priority:    alertdomain.PriorityMedium,
			Actionable:  "Schedule batch inference jobs during night hours (10 PM - 6 AM)",
		},
	},
	{
		applies: always,
		insight: alertdomain.Insight{
			Category:    alertdomain.CategoryEfficiency,
			Title:       "Model Optimization",
			Description: "Optimizing AI models through quantization, pruning, or distillation can reduce energy consumption while maintaining accuracy.",
			Impact:      "15-30% energy reduction per inference",
			Priority:    alertdomain.PriorityMedium,
			Actionable:  "Review top energy-consuming models for optimization opportunities",
		},
	},
	{
		applies: func(s snapshot) bool {
			return s.MonthToDateAiKwh.Valid &&
				s.MonthToDateAiKwh.Decimal.GreaterThan(decimal.NewFromFloat(s.Engine.HighVolumeAiKwh))
		},
		insight: alertdomain.Insight{
			Category:    alertdomain.CategoryScheduling,
			Title:       "Spread Peak Loads",
			Description: "High AI energy usage detected. Distributing workloads more evenly across time can reduce peak demand charges.",
			Impact:      "5-10% cost reduction on peak charges",
			Priority:    alertdomain.PriorityLow,
			Actionable:  "Implement workload queue with rate limiting",
		},
	},
	{
		applies: always,
		insight: alertdomain.Insight{
			Category:    alertdomain.CategoryCarbonBudget,
			Title:       "Set Carbon Budgets",
			Description: "Establishing monthly carbon budgets per department helps track and manage environmental impact systematically.",
			Impact:      "Improved ESG reporting and accountability",
			Priority:    alertdomain.PriorityMedium,
			Actionable:  "Define monthly CO₂e limits for each department",
		},
	},
}

func evaluateInsights(s snapshot) []alertdomain.Insight {
	out := make([]alertdomain.Insight, 0, len(insightRules))
	for _, rule := range insightRules {
		if rule.applies(s) {
			out = append(out, rule.insight)
		}
	}
	return out
}
