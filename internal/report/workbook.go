package report

import (
	"fmt"
	"io"
	"time"

	"github.com/tealeg/xlsx"

	"github.com/wonny/tradejournal/internal/analytics"
)

// Workbook sheet names
const (
	SheetSummary    = "Summary"
	SheetEquity     = "Equity"
	SheetDaily      = "Daily"
	SheetHourly     = "Hourly"
	SheetOrderTypes = "OrderTypes"
	SheetSignals    = "Signals"
)

// WriteWorkbook exports the complete report as an .xlsx workbook
func WriteWorkbook(w io.Writer, r *analytics.CompleteAnalytics) error {
	file, err := BuildWorkbook(r)
	if err != nil {
		return err
	}
	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveWorkbook writes the workbook to path
func SaveWorkbook(path string, r *analytics.CompleteAnalytics) error {
	file, err := BuildWorkbook(r)
	if err != nil {
		return err
	}
	if err := file.Save(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// BuildWorkbook lays out one sheet per report section
func BuildWorkbook(r *analytics.CompleteAnalytics) (*xlsx.File, error) {
	file := xlsx.NewFile()

	summary, err := addSheet(file, SheetSummary, "Metric", "Value")
	if err != nil {
		return nil, err
	}
	for _, kv := range []struct {
		name  string
		value float64
	}{
		{"Trade count", float64(r.Core.TradeCount)},
		{"Gross PnL", r.Core.GrossPnL},
		{"Net PnL", r.Core.NetPnL},
		{"Total fees", r.Core.TotalFees},
		{"Total volume", r.Core.TotalVolume},
		{"Win rate %", r.WinRate.WinRate},
		{"Loss rate %", r.WinRate.LossRate},
		{"Breakeven rate %", r.WinRate.BreakevenRate},
		{"Avg win", r.AvgWinLoss.AvgWin},
		{"Avg loss", r.AvgWinLoss.AvgLoss},
		{"Win/loss ratio", r.AvgWinLoss.WinLossRatio},
		{"Expectancy", r.Expectancy},
		{"Long PnL", r.LongShort.LongPnL},
		{"Short PnL", r.LongShort.ShortPnL},
		{"Avg duration (s)", r.Duration.AvgDurationSeconds},
		{"Median duration (s)", r.Duration.MedianDurationSeconds},
		{"Largest gain", r.Extremes.LargestGain},
		{"Largest loss", r.Extremes.LargestLoss},
		{"Fee % of PnL", r.VolumeAndFees.FeePercentOfPnL},
		{"Fee % of volume", r.VolumeAndFees.FeePercentOfVolume},
		{"Maker fees", r.VolumeAndFees.MakerFees},
		{"Taker fees", r.VolumeAndFees.TakerFees},
		{"Max drawdown %", r.Drawdown.MaxDrawdown},
		{"Max drawdown value", r.Drawdown.MaxDrawdownValue},
		{"Current drawdown %", r.Drawdown.CurrentDrawdown},
		{"Risk score", r.RiskScore.Overall},
		{"Consistency score", r.ConsistencyScore.Overall},
		{"Capital efficiency %", r.CapitalEfficiency.Score},
	} {
		row := summary.AddRow()
		row.AddCell().SetString(kv.name)
		row.AddCell().SetFloat(kv.value)
	}
	row := summary.AddRow()
	row.AddCell().SetString("Risk level")
	row.AddCell().SetString(string(r.RiskScore.Level))
	row = summary.AddRow()
	row.AddCell().SetString("Efficiency level")
	row.AddCell().SetString(string(r.CapitalEfficiency.Level))

	equity, err := addSheet(file, SheetEquity, "Trade", "Timestamp", "Equity", "Cumulative PnL")
	if err != nil {
		return nil, err
	}
	for _, p := range r.EquityCurve {
		row := equity.AddRow()
		row.AddCell().SetInt(p.TradeNumber)
		row.AddCell().SetString(p.Timestamp.UTC().Format(time.RFC3339))
		row.AddCell().SetFloat(p.Equity)
		row.AddCell().SetFloat(p.CumulativePnL)
	}

	daily, err := addSheet(file, SheetDaily, "Date", "Trades", "PnL", "Avg PnL", "Win rate %", "Volume")
	if err != nil {
		return nil, err
	}
	for _, d := range r.DailyPerformance {
		row := daily.AddRow()
		row.AddCell().SetString(d.Date)
		row.AddCell().SetInt(d.TradeCount)
		row.AddCell().SetFloat(d.PnL)
		row.AddCell().SetFloat(d.AvgPnL)
		row.AddCell().SetFloat(d.WinRate)
		row.AddCell().SetFloat(d.Volume)
	}

	hourly, err := addSheet(file, SheetHourly, "Hour", "Trades", "PnL", "Avg PnL", "Win rate %")
	if err != nil {
		return nil, err
	}
	for _, h := range r.HourlyPerformance {
		row := hourly.AddRow()
		row.AddCell().SetInt(h.Hour)
		row.AddCell().SetInt(h.TradeCount)
		row.AddCell().SetFloat(h.PnL)
		row.AddCell().SetFloat(h.AvgPnL)
		row.AddCell().SetFloat(h.WinRate)
	}

	orders, err := addSheet(file, SheetOrderTypes, "Order type", "Trades", "PnL", "Avg PnL", "Win rate %")
	if err != nil {
		return nil, err
	}
	for _, o := range r.OrderTypePerformance {
		row := orders.AddRow()
		row.AddCell().SetString(o.OrderType)
		row.AddCell().SetInt(o.TradeCount)
		row.AddCell().SetFloat(o.PnL)
		row.AddCell().SetFloat(o.AvgPnL)
		row.AddCell().SetFloat(o.WinRate)
	}

	signals, err := addSheet(file, SheetSignals, "Type", "Severity", "Message")
	if err != nil {
		return nil, err
	}
	for _, s := range r.OvertradingSignals {
		row := signals.AddRow()
		row.AddCell().SetString(string(s.Type))
		row.AddCell().SetString(string(s.Severity))
		row.AddCell().SetString(s.Message)
	}

	return file, nil
}

func addSheet(file *xlsx.File, name string, headers ...string) (*xlsx.Sheet, error) {
	sheet, err := file.AddSheet(name)
	if err != nil {
		return nil, fmt.Errorf("failed to add %s sheet: %w", name, err)
	}
	header := sheet.AddRow()
	for _, h := range headers {
		header.AddCell().SetString(h)
	}
	return sheet, nil
}
