package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const AttributionScale = 4

var (
	DefaultCompanyAiPercentage = decimal.RequireFromString("0.30")
	DefaultDepartmentWeight    = decimal.NewFromInt(1)
)

// CalculateAiAttribution returns round4(totalKwh × companyAiPercentage × departmentWeight),
// half-up. An absent percentage falls back to 0.30, an absent weight to 1.0 and an
// absent total yields zero.
func CalculateAiAttribution(totalKwh, companyAiPercentage, departmentWeight decimal.NullDecimal) decimal.Decimal {
	if !totalKwh.Valid {
		return decimal.Zero
	}
	pct := DefaultCompanyAiPercentage
	if companyAiPercentage.Valid {
		pct = companyAiPercentage.Decimal
	}
	weight := DefaultDepartmentWeight
	if departmentWeight.Valid {
		weight = departmentWeight.Decimal
	}
	return totalKwh.Decimal.Mul(pct).Mul(weight).Round(AttributionScale)
}

// Explain renders the attribution arithmetic for display next to a usage record.
func Explain(totalKwh, companyAiPercentage, departmentWeight decimal.NullDecimal) string {
	pct := DefaultCompanyAiPercentage
	if companyAiPercentage.Valid {
		pct = companyAiPercentage.Decimal
	}
	weight := DefaultDepartmentWeight
	if departmentWeight.Valid {
		weight = departmentWeight.Decimal
	}
	total := decimal.Zero
	if totalKwh.Valid {
		total = totalKwh.Decimal
	}
	result := CalculateAiAttribution(totalKwh, companyAiPercentage, departmentWeight)
	return fmt.Sprintf("%s kWh × %s%% company AI share × %s department weight = %s kWh attributed to AI",
		total.String(),
		pct.Mul(decimal.NewFromInt(100)).String(),
		weight.String(),
		result.StringFixed(AttributionScale),
	)
}
