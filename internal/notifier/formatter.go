package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"InvestAdvisor/internal/model"
)

var actionIcon = map[model.Action]string{
	model.ActionIncrease: "🟢",
	model.ActionHold:     "⚪",
	model.ActionReduce:   "🟠",
	model.ActionSell:     "🔴",
}

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func pct(v float64) string {
	return fmt.Sprintf("%+.1f%%", v*100)
}

// FormatAdvice formats an advice response into a Telegram message.
func FormatAdvice(resp *model.AdviceResponse) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Advice for %s</b> (%s) | %s\n\n",
		html.EscapeString(resp.ClientName), resp.ClientID, resp.GeneratedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Portfolio value: %s\n", money(resp.TotalPortfolioValue)))
	b.WriteString(fmt.Sprintf("Risk profile: %s\n\n", resp.RiskProfile))

	f := resp.InvestmentFactors
	b.WriteString("📈 <b>Factors:</b>\n")
	b.WriteString(fmt.Sprintf("  market %.2f | risk %.2f | diversification %.2f\n", f.MarketTrend, f.RiskTolerance, f.Diversification))
	b.WriteString(fmt.Sprintf("  age allocation %.2f | goal %.2f\n\n", f.AgeBasedAllocation, f.GoalAlignment))

	b.WriteString("💡 <b>Recommendations:</b>\n")
	if len(resp.Recommendations) == 0 {
		b.WriteString("  (no holdings)\n")
	}
	for _, r := range resp.Recommendations {
		b.WriteString(fmt.Sprintf("  %s %s: %s", actionIcon[r.Action], r.AssetClass, r.Action))
		if r.AllocationChange != 0 {
			b.WriteString(fmt.Sprintf(" %.1f%% → %.1f%%", r.CurrentAllocation, r.TargetAllocation))
		} else {
			b.WriteString(fmt.Sprintf(" at %.1f%%", r.CurrentAllocation))
		}
		b.WriteString(fmt.Sprintf(" (confidence %.0f)\n", r.ConfidenceScore))
		if r.Explanation != "" {
			b.WriteString(fmt.Sprintf("     <i>%s</i>\n", html.EscapeString(r.Explanation)))
		}
	}

	b.WriteString("\n📝 <b>Overall:</b>\n")
	for _, line := range resp.OverallAdvice {
		b.WriteString("• " + html.EscapeString(line) + "\n")
	}
	return b.String()
}

// FormatMarket formats the market snapshot, strongest forecast first as given.
func FormatMarket(m *model.MarketTrends) string {
	var b strings.Builder
	o := m.OverallMarket
	b.WriteString("🌐 <b>Market snapshot</b>\n\n")
	b.WriteString(fmt.Sprintf("Growth: %s | VIX: %.1f\n", pct(o.Growth), o.VolatilityIndex))
	b.WriteString(fmt.Sprintf("Interest: %.2f%% | Inflation: %.2f%%\n\n", o.InterestRate, o.InflationRate))

	for _, t := range m.Trends {
		b.WriteString(fmt.Sprintf("  %s: now %s, forecast %s (%s)\n",
			t.Sector, pct(t.CurrentGrowth), pct(t.ForecastGrowth), t.AnalystSentiment))
	}
	return b.String()
}

// FormatClients lists clients with how long ago they were last consulted.
func FormatClients(clients []model.ClientProfile, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("👥 <b>Clients</b> (%s)\n\n", humanize.Comma(int64(len(clients)))))
	for _, c := range clients {
		last := "never"
		if !c.LastConsultation.IsZero() {
			last = humanize.RelTime(c.LastConsultation.Time, now, "ago", "from now")
		}
		b.WriteString(fmt.Sprintf("  %s %s | %s | %s | last seen %s\n",
			c.ClientID, html.EscapeString(c.Name), c.RiskTolerance, c.FinancialGoal, last))
	}
	return b.String()
}

// FormatDigestHeader opens a scheduled digest.
func FormatDigestHeader(count int, now time.Time) string {
	return fmt.Sprintf("🗓 <b>Advice digest</b> | %s | %d %s\n",
		now.Format("2006-01-02"), count, pluralize(count, "client", "clients"))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
