package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osrs-econ/herbsched/internal/domain"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func sampleReport() *domain.RunReport {
	valid := domain.EvaluatedRecipe{
		RecipeName:     "Super attack",
		OutputItemName: "Super attack(4)",
		N:              ip(4),
		XPPerCraft:     fp(50),
		XPPerHour:      fp(255000),
		CraftsPerHour:  fp(40),
		ProfitPerCraft: fp(1234.5),
		GPPerHour:      fp(3456789.2),
		Valid:          true,
		InvalidReasons: []string{},
		IsAlert:        true,
	}
	invalid := domain.EvaluatedRecipe{
		RecipeName:     "Broken brew",
		OutputItemName: "__MISSING__",
		Valid:          false,
		InvalidReasons: []string{"Missing OutputItemName", "Missing/invalid N"},
	}
	return &domain.RunReport{
		TimestampUTC: "2026-08-30T12:00:00+00:00",
		PriceSource:  "https://example.test/dump.json",
		TableA:       []domain.EvaluatedRecipe{valid, invalid},
		TableB:       []domain.EvaluatedRecipe{valid},
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "N/A", FormatNumber(nil, 2))
	assert.Equal(t, "1,234,567", FormatNumber(fp(1234567.4), 0))
	assert.Equal(t, "1,234.57", FormatNumber(fp(1234.567), 2))
	assert.Equal(t, "-11,866", FormatNumber(fp(-11866.0), 0))
	assert.Equal(t, "0.00", FormatNumber(fp(0), 2))
}

func TestTableColumnOrder(t *testing.T) {
	table := Table(sampleReport().TableA)
	lines := strings.Split(strings.TrimSpace(table), "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	assert.Equal(t, "| RecipeName | OutputItemName | N | XP/craft | XP/h | crafts/h | profit/craft | gp/h |", lines[0])

	// Valid row: formatted numbers, 0 decimals for XP/h and gp/h.
	assert.Equal(t, "| Super attack | Super attack(4) | 4 | 50.00 | 255,000 | 40.00 | 1,234.50 | 3,456,789 |", lines[2])

	// Invalid row: absent economic fields are N/A, never zero.
	assert.Equal(t, "| Broken brew | __MISSING__ | N/A | N/A | N/A | N/A | N/A | N/A |", lines[3])
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(sampleReport())

	assert.Contains(t, md, "# Herblore Scheduling Run")
	assert.Contains(t, md, "- Timestamp (UTC): **2026-08-30T12:00:00+00:00**")
	assert.Contains(t, md, "- Price source: `https://example.test/dump.json`")
	assert.Contains(t, md, "## TABLE A — All recipes (sorted by gp_per_hour desc)")
	assert.Contains(t, md, "## TABLE B — Alerts")
	assert.Contains(t, md, "## Invalid recipes")
	assert.Contains(t, md, "- **Broken brew** → Missing OutputItemName, Missing/invalid N")
}

func TestRenderMarkdownNoAlerts(t *testing.T) {
	r := sampleReport()
	r.TableB = nil
	md := RenderMarkdown(r)

	assert.Contains(t, md, "No alerts this run.")
}

func TestRenderMarkdownDeterministic(t *testing.T) {
	a := RenderMarkdown(sampleReport())
	b := RenderMarkdown(sampleReport())
	assert.Equal(t, a, b)
}
