package optimization

// DefaultGrid provides the default parameter ranges for a condor search.
var DefaultGrid = Grid{
	OTMRange:      []float64{0.3, 0.4, 0.5, 0.6, 0.8, 1.0, 1.2, 1.5},
	WingRange:     []float64{25, 50, 75, 100},
	IntradayRange: []float64{0.3, 0.5, 0.8, 1.0, 1.5},
	CreditRange:   []float64{1.0, 1.5, 2.0, 2.5, 3.0},
}

// GetDefaultGrid returns the default search grid.
func GetDefaultGrid() Grid {
	return DefaultGrid
}
