package report

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/wonny/tradejournal/internal/analytics"
)

// RenderText writes the complete report as console tables
func RenderText(w io.Writer, r *analytics.CompleteAnalytics) error {
	fmt.Fprintln(w, "== Summary ==")
	if err := renderSummary(w, r); err != nil {
		return err
	}

	if len(r.DailyPerformance) > 0 {
		fmt.Fprintln(w, "\n== Daily ==")
		if err := renderDaily(w, r.DailyPerformance); err != nil {
			return err
		}
	}

	if active := activeHours(r.HourlyPerformance); len(active) > 0 {
		fmt.Fprintln(w, "\n== Hour of day (UTC) ==")
		if err := renderHourly(w, active); err != nil {
			return err
		}
	}

	if len(r.OrderTypePerformance) > 0 {
		fmt.Fprintln(w, "\n== Order types ==")
		if err := renderOrderTypes(w, r.OrderTypePerformance); err != nil {
			return err
		}
	}

	return RenderAdvancedText(w, &analytics.AdvancedAnalytics{
		RiskScore:          r.RiskScore,
		OvertradingSignals: r.OvertradingSignals,
		ConsistencyScore:   r.ConsistencyScore,
		CapitalEfficiency:  r.CapitalEfficiency,
	})
}

// RenderAdvancedText writes risk, consistency, efficiency and signals
func RenderAdvancedText(w io.Writer, a *analytics.AdvancedAnalytics) error {
	fmt.Fprintln(w, "\n== Behaviour ==")

	table := tablewriter.NewWriter(w)
	table.Header("Score", "Value", "Band", "Recommendation")
	table.Append("Risk", num(a.RiskScore.Overall), string(a.RiskScore.Level), a.RiskScore.Recommendation)
	table.Append("Consistency", num(a.ConsistencyScore.Overall), "", a.ConsistencyScore.Recommendation)
	table.Append("Capital efficiency", pct(a.CapitalEfficiency.Score), string(a.CapitalEfficiency.Level), a.CapitalEfficiency.Recommendation)
	if err := table.Render(); err != nil {
		return fmt.Errorf("render scores: %w", err)
	}

	rc := a.RiskScore.Components
	cc := a.ConsistencyScore.Components
	comp := tablewriter.NewWriter(w)
	comp.Header("Risk component", "Value", "Consistency component", "Value")
	comp.Append("Drawdown severity", num(rc.DrawdownSeverity), "Win rate stability", num(cc.WinRateStability))
	comp.Append("Position sizing", num(rc.PositionSizingConsistency), "PnL variance", num(cc.PnLVariance))
	comp.Append("Overtrading", num(rc.OvertradingIndex), "Frequency regularity", num(cc.TradeFrequencyRegularity))
	comp.Append("Streak volatility", num(rc.WinStreakVolatility), "Drawdown recovery", num(cc.DrawdownRecoveryTime))
	comp.Append("Fee burn", num(rc.FeeBurnRate), "Profit factor stability", num(cc.ProfitFactorStability))
	if err := comp.Render(); err != nil {
		return fmt.Errorf("render components: %w", err)
	}

	if len(a.OvertradingSignals) == 0 {
		fmt.Fprintln(w, "No overtrading signals.")
		return nil
	}

	signals := tablewriter.NewWriter(w)
	signals.Header("Signal", "Severity", "Message")
	for _, s := range a.OvertradingSignals {
		signals.Append(string(s.Type), string(s.Severity), s.Message)
	}
	if err := signals.Render(); err != nil {
		return fmt.Errorf("render signals: %w", err)
	}
	return nil
}

func renderSummary(w io.Writer, r *analytics.CompleteAnalytics) error {
	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")

	rows := [][2]string{
		{"Closed trades", fmt.Sprintf("%d", r.Core.TradeCount)},
		{"Gross PnL", money(r.Core.GrossPnL)},
		{"Net PnL", money(r.Core.NetPnL)},
		{"Total fees", money(r.Core.TotalFees)},
		{"Total volume", money(r.Core.TotalVolume)},
		{"Win / loss / BE", fmt.Sprintf("%s / %s / %s", pct(r.WinRate.WinRate), pct(r.WinRate.LossRate), pct(r.WinRate.BreakevenRate))},
		{"Avg win / avg loss", fmt.Sprintf("%s / %s", money(r.AvgWinLoss.AvgWin), money(r.AvgWinLoss.AvgLoss))},
		{"Win/loss ratio", num(r.AvgWinLoss.WinLossRatio)},
		{"Expectancy", money(r.Expectancy)},
		{"Long / short", fmt.Sprintf("%d (%s) / %d (%s)", r.LongShort.LongCount, money(r.LongShort.LongPnL), r.LongShort.ShortCount, money(r.LongShort.ShortPnL))},
		{"Avg holding", (time.Duration(r.Duration.AvgDurationSeconds) * time.Second).String()},
		{"Median holding", (time.Duration(r.Duration.MedianDurationSeconds) * time.Second).String()},
		{"Largest gain", extreme(r.Extremes.LargestGain, r.Extremes.LargestGainSymbol)},
		{"Largest loss", extreme(r.Extremes.LargestLoss, r.Extremes.LargestLossSymbol)},
		{"Fees % of PnL", pct(r.VolumeAndFees.FeePercentOfPnL)},
		{"Maker / taker fees", fmt.Sprintf("%s / %s", money(r.VolumeAndFees.MakerFees), money(r.VolumeAndFees.TakerFees))},
		{"Max drawdown", fmt.Sprintf("%s (%s)", pct(r.Drawdown.MaxDrawdown), money(r.Drawdown.MaxDrawdownValue))},
		{"Current drawdown", pct(r.Drawdown.CurrentDrawdown)},
	}
	for _, row := range rows {
		table.Append(row[0], row[1])
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}

func renderDaily(w io.Writer, days []analytics.DailyStats) error {
	table := tablewriter.NewWriter(w)
	table.Header("Date", "Trades", "PnL", "Avg PnL", "Win rate", "Volume")
	for _, d := range days {
		table.Append(d.Date, fmt.Sprintf("%d", d.TradeCount), money(d.PnL), money(d.AvgPnL), pct(d.WinRate), money(d.Volume))
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render daily: %w", err)
	}
	return nil
}

func renderHourly(w io.Writer, hours []analytics.HourlyStats) error {
	table := tablewriter.NewWriter(w)
	table.Header("Hour", "Trades", "PnL", "Avg PnL", "Win rate")
	for _, h := range hours {
		table.Append(fmt.Sprintf("%02d:00", h.Hour), fmt.Sprintf("%d", h.TradeCount), money(h.PnL), money(h.AvgPnL), pct(h.WinRate))
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render hourly: %w", err)
	}
	return nil
}

func renderOrderTypes(w io.Writer, types []analytics.OrderTypeStats) error {
	table := tablewriter.NewWriter(w)
	table.Header("Order type", "Trades", "PnL", "Avg PnL", "Win rate")
	for _, o := range types {
		table.Append(o.OrderType, fmt.Sprintf("%d", o.TradeCount), money(o.PnL), money(o.AvgPnL), pct(o.WinRate))
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render order types: %w", err)
	}
	return nil
}

// activeHours drops empty hour buckets
func activeHours(hours []analytics.HourlyStats) []analytics.HourlyStats {
	var out []analytics.HourlyStats
	for _, h := range hours {
		if h.TradeCount > 0 {
			out = append(out, h)
		}
	}
	return out
}

func extreme(v float64, symbol string) string {
	if symbol == "" {
		return money(v)
	}
	return fmt.Sprintf("%s (%s)", money(v), symbol)
}

func money(v float64) string { return fmt.Sprintf("%.2f", v) }
func pct(v float64) string   { return fmt.Sprintf("%.2f%%", v) }
func num(v float64) string   { return fmt.Sprintf("%.2f", v) }
