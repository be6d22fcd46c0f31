package intensity

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Region is one row of the built-in intensity table.
type Region struct {
	Code      string          `yaml:"code" json:"region"`
	Name      string          `yaml:"name" json:"name"`
	Intensity decimal.Decimal `yaml:"-" json:"carbon_intensity"`
	Raw       float64         `yaml:"intensity" json:"-"`
}

// Table is an ordered, read-only region → gCO2/kWh mapping.
type Table struct {
	Unit      string
	ValidYear int
	Fallback  decimal.Decimal
	regions   []Region
	byCode    map[string]Region
}

type tableFile struct {
	Unit      string   `yaml:"unit"`
	ValidYear int      `yaml:"validYear"`
	Fallback  float64  `yaml:"fallback"`
	Regions   []Region `yaml:"regions"`
}

var defaultTable = mustParse(defaultsYAML)

// Default returns the built-in table.
func Default() *Table {
	return defaultTable
}

// Parse builds a table from YAML. Codes are uppercased and must be unique.
func Parse(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse intensity table: %w", err)
	}
	if file.Fallback <= 0 {
		return nil, fmt.Errorf("intensity table fallback must be positive")
	}

	t := &Table{
		Unit:      file.Unit,
		ValidYear: file.ValidYear,
		Fallback:  decimal.NewFromFloat(file.Fallback),
		regions:   make([]Region, 0, len(file.Regions)),
		byCode:    make(map[string]Region, len(file.Regions)),
	}
	for _, r := range file.Regions {
		r.Code = Normalize(r.Code)
		if r.Code == "" {
			return nil, fmt.Errorf("intensity table has a region without code")
		}
		if _, dup := t.byCode[r.Code]; dup {
			return nil, fmt.Errorf("intensity table has duplicate region %q", r.Code)
		}
		if r.Raw < 0 {
			return nil, fmt.Errorf("intensity for %q cannot be negative", r.Code)
		}
		r.Intensity = decimal.NewFromFloat(r.Raw)
		t.regions = append(t.regions, r)
		t.byCode[r.Code] = r
	}
	return t, nil
}

func mustParse(data []byte) *Table {
	t, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Normalize uppercases and trims a region code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup returns the table intensity for code, case-insensitively.
func (t *Table) Lookup(code string) (decimal.Decimal, bool) {
	r, ok := t.byCode[Normalize(code)]
	if !ok {
		return decimal.Decimal{}, false
	}
	return r.Intensity, true
}

// Intensity returns the table value or the fallback for unknown codes.
func (t *Table) Intensity(code string) decimal.Decimal {
	if v, ok := t.Lookup(code); ok {
		return v
	}
	return t.Fallback
}

// Name returns the display name for code, or the normalized code when unknown.
func (t *Table) Name(code string) string {
	if r, ok := t.byCode[Normalize(code)]; ok {
		return r.Name
	}
	return Normalize(code)
}

// Regions returns a copy of the rows in declaration order.
func (t *Table) Regions() []Region {
	out := make([]Region, len(t.regions))
	copy(out, t.regions)
	return out
}
