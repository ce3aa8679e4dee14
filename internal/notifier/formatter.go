package notifier

import (
	"fmt"
	"html"
	"strings"

	"ReturnSentinel/internal/calculator"
	"ReturnSentinel/internal/model"
	"ReturnSentinel/internal/recorder"
)

// FormatConsoleReport formats the statistics as plain text for stdout.
// periodsPerYear > 0 adds an annualized volatility line.
func FormatConsoleReport(series *model.PriceSeries, stats *model.ReturnStats, periodsPerYear int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Return statistics for %s (%s, %d prices, %s)\n",
		series.Symbol, series.Source, series.Len(), series.FetchedAt.Format("2006-01-02")))
	b.WriteString("Returns:\n")
	for i, r := range stats.Returns {
		b.WriteString(fmt.Sprintf("  %2d  %+.6f\n", i+1, r))
	}
	b.WriteString(fmt.Sprintf("Mean:        %.6f\n", stats.Mean))
	b.WriteString(fmt.Sprintf("Volatility:  %.6f (%s)\n", stats.Volatility, stats.Mode))
	if ann, err := calculator.AnnualizeVolatility(stats.Volatility, periodsPerYear); err == nil {
		b.WriteString(fmt.Sprintf("Annualized:  %.6f (%d periods/year)\n", ann, periodsPerYear))
	}

	if stats.Valid() {
		b.WriteString(fmt.Sprintf("Check OK. Mean: %.6f, Volatility: %.6f\n", stats.Mean, stats.Volatility))
	} else {
		b.WriteString("Check FAILED: mean and volatility must both be positive\n")
	}
	return b.String()
}

// FormatTelegramReport formats the statistics into an HTML Telegram message.
func FormatTelegramReport(series *model.PriceSeries, stats *model.ReturnStats, periodsPerYear int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", html.EscapeString(series.Symbol), series.FetchedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Prices: %d (%s)\n", series.Len(), html.EscapeString(series.Source)))

	b.WriteString("📈 <b>Returns:</b>\n")
	for _, r := range stats.Returns {
		b.WriteString(fmt.Sprintf("  %+.4f%%\n", r*100))
	}
	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("  Mean: %+.4f%%\n", stats.Mean*100))
	b.WriteString(fmt.Sprintf("  Volatility: %.4f%% (%s)\n", stats.Volatility*100, stats.Mode))
	if ann, err := calculator.AnnualizeVolatility(stats.Volatility, periodsPerYear); err == nil {
		b.WriteString(fmt.Sprintf("  Annualized: %.2f%%\n", ann*100))
	}

	if !stats.Valid() {
		b.WriteString("\n⚠️ Check failed: mean and volatility must both be positive\n")
	}
	return b.String()
}

// FormatHistory formats recent snapshots, newest first.
func FormatHistory(snaps []recorder.Snapshot) string {
	if len(snaps) == 0 {
		return "No history recorded yet."
	}
	var b strings.Builder
	b.WriteString("🗂 <b>Recent runs</b>\n\n")
	for _, s := range snaps {
		b.WriteString(fmt.Sprintf("%s %s: mean %+.4f%%, vol %.4f%%\n",
			s.Time.Format("2006-01-02 15:04"), html.EscapeString(s.Symbol),
			s.Stats.Mean*100, s.Stats.Volatility*100))
	}
	return b.String()
}
