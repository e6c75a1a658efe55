package uploadmapper

import (
	"sort"

	"mapper-backend/internal/pricing"
)

// Row is one spreadsheet row keyed by header name. Cell values stay strings;
// numeric columns are parsed where a rule needs them.
type Row map[string]string

// CorrectionSink receives every option-price correction a solution performs,
// so callers can persist them for operator review.
type CorrectionSink func(productCode string, marketPrice float64, original, corrected string, res pricing.CorrectionResult)

// MappingConfig carries the per-run settings a solution applies on top of the
// plain column mapping.
type MappingConfig struct {
	MarketCode       string
	ShippingMethod   pricing.ShippingMethod
	Pricing          pricing.PricingConfig
	DetailBottomText string
	OnCorrection     CorrectionSink
}

// MappingStats summarizes one solution run.
type MappingStats struct {
	TotalRows     int
	MappedRows    int
	CorrectedRows int
}

// Solution is one marketplace upload-file layout. Implementations fill a
// result sheet (the solution's column set) from the processed sheet and apply
// the marketplace's business rules.
type Solution interface {
	Name() string
	Columns() []string
	// DefaultMapping maps processed-sheet columns to solution columns.
	DefaultMapping() map[string]string
	// CodeColumn is the solution column holding the product code rows are
	// matched on.
	CodeColumn() string
	ApplyRules(result []Row, processed []Row, cfg MappingConfig) ([]Row, MappingStats)
}

var solutions = map[string]Solution{}

func register(s Solution) {
	solutions[s.Name()] = s
}

func GetSolution(name string) (Solution, bool) {
	s, ok := solutions[name]
	return s, ok
}

func SolutionNames() []string {
	names := make([]string, 0, len(solutions))
	for name := range solutions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
