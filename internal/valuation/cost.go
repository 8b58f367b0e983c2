package valuation

import (
	"github.com/osrs-econ/herbsched/internal/domain"
	"github.com/osrs-econ/herbsched/internal/normalize"
	"github.com/osrs-econ/herbsched/internal/pricing"
)

// MaterialCost computes the total cost of a material list against the price
// index. It fails fast: any line with a missing item name, an unparsable
// quantity, or an absent price makes the whole result absent. No partial
// totals.
//
// A dose-scaled line contributes (Price(item(4))/4) * n * qty, used when the
// base is a 4-dose potion consumed proportionally to N. Normal lines
// contribute Price(item) * qty.
func MaterialCost(idx *pricing.Index, lines []domain.MaterialLine, n int) (float64, bool) {
	total := 0.0

	for _, line := range lines {
		name, nameOK := normalize.String(line.ItemName)
		qty, qtyOK := normalize.Float(line.Quantity)
		if !nameOK || !qtyOK {
			return 0, false
		}

		price, ok := idx.PriceOf(name)
		if !ok {
			return 0, false
		}

		if line.DoseScaled() {
			perDose := price / pricing.DosesPerPotion
			total += perDose * float64(n) * qty
		} else {
			total += price * qty
		}
	}

	return total, true
}
