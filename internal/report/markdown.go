// Package report renders a run report as markdown, JSON and the compact
// webhook digest.
package report

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osrs-econ/herbsched/internal/domain"
)

// column headers in their fixed output order
var columnHeaders = []string{
	"RecipeName", "OutputItemName", "N", "XP/craft", "XP/h", "crafts/h", "profit/craft", "gp/h",
}

// printer formats numbers with thousands separators.
var printer = message.NewPrinter(language.English)

// FormatNumber renders an optional float with separators and fixed decimals;
// absent or non-finite values render as "N/A".
func FormatNumber(v *float64, decimals int) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return "N/A"
	}
	if decimals == 0 {
		return printer.Sprintf("%d", int64(math.Round(*v)))
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), *v)
}

func formatN(n *int) string {
	if n == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *n)
}

func row(r domain.EvaluatedRecipe) []string {
	return []string{
		r.RecipeName,
		r.OutputItemName,
		formatN(r.N),
		FormatNumber(r.XPPerCraft, 2),
		FormatNumber(r.XPPerHour, 0),
		FormatNumber(r.CraftsPerHour, 2),
		FormatNumber(r.ProfitPerCraft, 2),
		FormatNumber(r.GPPerHour, 0),
	}
}

// Table renders evaluated recipes as a markdown table with the fixed column
// order.
func Table(recipes []domain.EvaluatedRecipe) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(columnHeaders, " | ") + " |\n")
	b.WriteString("| " + strings.Repeat("--- | ", len(columnHeaders)-1) + "--- |\n")
	for _, r := range recipes {
		b.WriteString("| " + strings.Join(row(r), " | ") + " |\n")
	}
	return b.String()
}

// RenderMarkdown produces the full run report document: header block, both
// tables and the trailing invalid-recipe list.
func RenderMarkdown(r *domain.RunReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Herblore Scheduling Run\n\n- Timestamp (UTC): **%s**\n- Price source: `%s`\n", r.TimestampUTC, r.PriceSource)

	b.WriteString("## TABLE A — All recipes (sorted by gp_per_hour desc)\n")
	b.WriteString(Table(r.TableA))

	b.WriteString("## TABLE B — Alerts (gp_per_hour > 3M AND xp_per_hour > 250k)\n")
	if len(r.TableB) == 0 {
		b.WriteString("No alerts this run.\n")
	} else {
		b.WriteString(Table(r.TableB))
	}

	if invalid := r.InvalidRecipes(); len(invalid) > 0 {
		b.WriteString("## Invalid recipes (blocked by __MISSING__/__OCR_UNCERTAIN__ or missing prices)\n")
		for _, rec := range invalid {
			fmt.Fprintf(&b, "- **%s** → %s\n", rec.RecipeName, strings.Join(rec.InvalidReasons, ", "))
		}
	}

	return b.String()
}
