// Package export renders analytics series as spreadsheets.
package export

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	analyticsdomain "github.com/smallbiznis/ecoai/internal/analytics/domain"
	"github.com/xuri/excelize/v2"
)

const (
	TrendsSheet   = "Trends"
	ForecastSheet = "Forecast"
	dateLayout    = "2006-01-02"
)

var (
	trendHeader    = []string{"Month", "Date", "Total kWh", "AI kWh", "CO2e kg", "Cost"}
	forecastHeader = []string{"Month", "Date", "Predicted AI kWh", "Predicted CO2e kg", "Predicted Cost", "Low", "High"}
)

// Workbook writes one sheet per series and returns the XLSX bytes.
func Workbook(trends []analyticsdomain.TrendPoint, forecast []analyticsdomain.ForecastPoint) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(TrendsSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if _, err := f.NewSheet(ForecastSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2F0D9"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	trendRows := make([][]any, 0, len(trends))
	for _, p := range trends {
		trendRows = append(trendRows, []any{
			p.Period, p.Date.Format(dateLayout),
			number(p.TotalEnergyKwh), number(p.AiEnergyKwh), number(p.Co2eKg), number(p.Cost),
		})
	}
	if err := writeSheet(f, TrendsSheet, trendHeader, trendRows, headerStyle); err != nil {
		return nil, err
	}

	forecastRows := make([][]any, 0, len(forecast))
	for _, p := range forecast {
		forecastRows = append(forecastRows, []any{
			p.Period, p.Date.Format(dateLayout),
			number(p.PredictedAiKwh), number(p.PredictedCo2eKg), number(p.PredictedCost),
			number(p.ConfidenceLow), number(p.ConfidenceHigh),
		})
	}
	if err := writeSheet(f, ForecastSheet, forecastHeader, forecastRows, headerStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any, headerStyle int) error {
	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 14); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
