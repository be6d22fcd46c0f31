package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ReportData is an executive report with every value already formatted.
type ReportData struct {
	CompanyName string
	Period      string
	GeneratedAt string
	Currency    string

	KPIs        []KPI
	Departments []DepartmentRow
	Trends      []TrendRow
}

type KPI struct {
	Label  string
	Value  string
	Change string
}

type DepartmentRow struct {
	Name  string
	Team  string
	AiKwh string
	Share string
}

type TrendRow struct {
	Period   string
	TotalKwh string
	AiKwh    string
	Co2eKg   string
	Cost     string
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

var (
	headerText = props.Text{Style: fontstyle.Bold, Size: 9}
	cellText   = props.Text{Size: 9}
	rightCell  = props.Text{Size: 9, Align: align.Right}
	rightHead  = props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}
)

func (p *PDFProvider) GenerateReport(ctx context.Context, report ReportData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "AI Energy & Carbon Report", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(16,
		col.New(8).Add(
			text.New(report.CompanyName, props.Text{Style: fontstyle.Bold, Top: 0}),
			text.New("Period: "+report.Period, props.Text{Top: 5}),
			text.New("Currency: "+report.Currency, props.Text{Top: 10}),
		),
		text.NewCol(4, "Generated "+report.GeneratedAt, props.Text{Size: 8, Align: align.Right}),
	)

	section(m, "Key figures")
	m.AddRow(8,
		text.NewCol(6, "Metric", headerText),
		text.NewCol(3, "Value", rightHead),
		text.NewCol(3, "Change", rightHead),
	)
	for _, k := range report.KPIs {
		m.AddRow(7,
			text.NewCol(6, k.Label, cellText),
			text.NewCol(3, k.Value, rightCell),
			text.NewCol(3, k.Change, rightCell),
		)
	}

	section(m, "AI energy by department")
	m.AddRow(8,
		text.NewCol(5, "Department", headerText),
		text.NewCol(3, "Team", headerText),
		text.NewCol(2, "AI kWh", rightHead),
		text.NewCol(2, "Share", rightHead),
	)
	if len(report.Departments) == 0 {
		m.AddRow(7, text.NewCol(12, "No departments", cellText))
	}
	for _, d := range report.Departments {
		m.AddRow(7,
			text.NewCol(5, d.Name, cellText),
			text.NewCol(3, d.Team, cellText),
			text.NewCol(2, d.AiKwh, rightCell),
			text.NewCol(2, d.Share, rightCell),
		)
	}

	section(m, "Monthly trend")
	m.AddRow(8,
		text.NewCol(4, "Month", headerText),
		text.NewCol(2, "Total kWh", rightHead),
		text.NewCol(2, "AI kWh", rightHead),
		text.NewCol(2, "CO2e kg", rightHead),
		text.NewCol(2, "Cost", rightHead),
	)
	for _, t := range report.Trends {
		m.AddRow(7,
			text.NewCol(4, t.Period, cellText),
			text.NewCol(2, t.TotalKwh, rightCell),
			text.NewCol(2, t.AiKwh, rightCell),
			text.NewCol(2, t.Co2eKg, rightCell),
			text.NewCol(2, t.Cost, rightCell),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func section(m core.Maroto, title string) {
	m.AddRow(6)
	m.AddRow(9,
		text.NewCol(12, title, props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}),
	)
	m.AddRow(2, line.NewCol(12))
}
