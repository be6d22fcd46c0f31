// Package schema lists the persisted models in dependency order.
package schema

import (
	alertdomain "github.com/smallbiznis/ecoai/internal/alert/domain"
	carbondomain "github.com/smallbiznis/ecoai/internal/carbon/domain"
	companydomain "github.com/smallbiznis/ecoai/internal/company/domain"
	energydomain "github.com/smallbiznis/ecoai/internal/energy/domain"
	simulationdomain "github.com/smallbiznis/ecoai/internal/simulation/domain"
)

func Models() []any {
	return []any{
		&companydomain.Company{},
		&companydomain.Department{},
		&energydomain.UsageRecord{},
		&carbondomain.Config{},
		&carbondomain.Emission{},
		&alertdomain.Threshold{},
		&simulationdomain.Scenario{},
	}
}
