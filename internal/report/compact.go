package report

import (
	"fmt"
	"strings"

	"github.com/osrs-econ/herbsched/internal/domain"
)

// ContentLimit is the maximum characters per delivered message unit, a safe
// margin under Discord's 2000-character cap.
const ContentLimit = 1900

// topDigestSize caps the quick-glance ranking list in the compact digest.
const topDigestSize = 10

// RenderCompact builds the webhook digest: header, the alert table (or an
// explicit no-alerts line) and a top-10 list from Table A.
func RenderCompact(r *domain.RunReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Herblore Scheduling Run** (UTC %s)\n", r.TimestampUTC)

	if len(r.TableB) == 0 {
		b.WriteString("**TABLE B — Alerts:** No alerts this run.\n")
	} else {
		b.WriteString("**TABLE B — Alerts:**\n")
		b.WriteString(Table(r.TableB))
	}

	b.WriteString(fmt.Sprintf("**Top %d (TABLE A):**\n", topDigestSize))
	top := r.TableA
	if len(top) > topDigestSize {
		top = top[:topDigestSize]
	}
	for _, rec := range top {
		fmt.Fprintf(&b, "- %s: gp/h %s, xp/h %s\n",
			rec.RecipeName, FormatNumber(rec.GPPerHour, 0), FormatNumber(rec.XPPerHour, 0))
	}

	return b.String()
}

// Chunk splits content into message units of at most limit characters,
// delivered sequentially. Empty content yields a single placeholder chunk so
// a delivery still happens.
func Chunk(content string, limit int) []string {
	if content == "" {
		return []string{"(empty)"}
	}

	var chunks []string
	for len(content) > limit {
		chunks = append(chunks, content[:limit])
		content = content[limit:]
	}
	return append(chunks, content)
}
