package reporting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/quantforge/condor-backtest/pkg/optimization"
)

// DefaultExcelReporter implements Excel output functionality.
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter.
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// excelStyles holds the workbook styles.
type excelStyles struct {
	header  int
	base    int
	topRank int
}

// WriteRankingXLSX writes the full ranking to an Excel workbook.
func (r *DefaultExcelReporter) WriteRankingXLSX(entries []optimization.RankedEntry, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const sheet = "Ranking"
	fx.SetSheetName(fx.GetSheetName(0), sheet)

	styles, err := r.createStyles(fx)
	if err != nil {
		return err
	}

	headers := []string{
		"Rank", "OTM %", "Wing Width", "Max Change %", "Credit",
		"IS P&L", "IS Trades", "IS Win Rate", "IS Sortino",
		"OOS P&L", "OOS Trades", "OOS Win Rate", "OOS Sortino",
		"Robustness",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.header)
	}
	fx.SetColWidth(sheet, "A", "N", 13)

	for rowIdx, e := range entries {
		row := rowIdx + 2
		values := []interface{}{
			e.Rank,
			e.Params.OTMPercent,
			e.Params.WingWidth,
			e.Params.IntradayChangeMax,
			e.Params.Credit,
			e.InSample.TotalPnL,
			e.InSample.TotalTrades,
			e.InSample.WinRate,
			excelRatio(e.InSample.SortinoRatio),
			nil, nil, nil, nil,
			excelRatio(e.Robustness),
		}
		if e.OutOfSample != nil {
			values[9] = e.OutOfSample.TotalPnL
			values[10] = e.OutOfSample.TotalTrades
			values[11] = e.OutOfSample.WinRate
			values[12] = excelRatio(e.OutOfSample.SortinoRatio)
		}

		style := styles.base
		if e.Rank <= 10 {
			style = styles.topRank
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if v != nil {
				fx.SetCellValue(sheet, cell, v)
			}
			fx.SetCellStyle(sheet, cell, cell, style)
		}
	}

	return fx.SaveAs(path)
}

func (r *DefaultExcelReporter) createStyles(fx *excelize.File) (excelStyles, error) {
	var styles excelStyles
	var err error

	styles.header, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.base, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10, Family: "Calibri"},
	})
	if err != nil {
		return styles, err
	}

	styles.topRank, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10, Family: "Calibri", Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"E8F4E8"},
			Pattern: 1,
		},
	})
	return styles, err
}

// excelRatio keeps non-finite ratios representable in a cell.
func excelRatio(v float64) interface{} {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return formatRatio(v)
	}
	return v
}

// WriteRankingXLSX writes a ranking using the default reporter.
func WriteRankingXLSX(entries []optimization.RankedEntry, path string) error {
	reporter := NewDefaultExcelReporter()
	return reporter.WriteRankingXLSX(entries, path)
}
