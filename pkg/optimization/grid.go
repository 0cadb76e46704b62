package optimization

import "github.com/quantforge/condor-backtest/internal/backtest"

// Grid enumerates the Cartesian product of four discretized parameter
// ranges. Generation order is fixed: the OTM range varies slowest.
type Grid struct {
	OTMRange      []float64
	WingRange     []float64
	IntradayRange []float64
	CreditRange   []float64
}

// Count returns the number of parameter sets the grid generates. It equals
// len(Generate()) for every combination of range sizes, including empty
// ranges.
func (g Grid) Count() int {
	return len(g.OTMRange) * len(g.WingRange) * len(g.IntradayRange) * len(g.CreditRange)
}

// Generate returns the ordered sequence of candidate parameter sets.
func (g Grid) Generate() []backtest.ParameterSet {
	sets := make([]backtest.ParameterSet, 0, g.Count())
	for _, otm := range g.OTMRange {
		for _, wing := range g.WingRange {
			for _, intraday := range g.IntradayRange {
				for _, credit := range g.CreditRange {
					sets = append(sets, backtest.ParameterSet{
						OTMPercent:        otm,
						WingWidth:         wing,
						IntradayChangeMax: intraday,
						Credit:            credit,
					})
				}
			}
		}
	}
	return sets
}

// Validate checks every generated set before a search starts, so an invalid
// range fails fast instead of producing a partial result table.
func (g Grid) Validate() error {
	for _, set := range g.Generate() {
		if err := set.Validate(); err != nil {
			return err
		}
	}
	return nil
}
