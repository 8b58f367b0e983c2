package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osrs-econ/herbsched/internal/domain"
)

func evaluated(name string, gpPerHour *float64, valid, alert bool) domain.EvaluatedRecipe {
	reasons := []string{}
	if !valid {
		reasons = []string{ReasonInvalidN}
	}
	return domain.EvaluatedRecipe{
		RecipeName:     name,
		GPPerHour:      gpPerHour,
		Valid:          valid,
		InvalidReasons: reasons,
		IsAlert:        alert,
	}
}

func gp(v float64) *float64 { return &v }

func TestSortTableA(t *testing.T) {
	table := []domain.EvaluatedRecipe{
		evaluated("invalid-one", nil, false, false),
		evaluated("low", gp(100), true, false),
		evaluated("negative", gp(-5000), true, false),
		evaluated("invalid-two", nil, false, false),
		evaluated("high", gp(4_000_000), true, false),
	}

	SortTableA(table)

	names := make([]string, len(table))
	for i, r := range table {
		names[i] = r.RecipeName
	}
	assert.Equal(t, []string{"high", "low", "negative", "invalid-one", "invalid-two"}, names)

	// gp/h is monotonically non-increasing across the valid prefix.
	prev := *table[0].GPPerHour
	for _, r := range table {
		if !r.Valid {
			break
		}
		require.NotNil(t, r.GPPerHour)
		assert.LessOrEqual(t, *r.GPPerHour, prev)
		prev = *r.GPPerHour
	}
}

func TestSortTableAInvalidRelativeOrderPreserved(t *testing.T) {
	table := []domain.EvaluatedRecipe{
		evaluated("inv-a", nil, false, false),
		evaluated("inv-b", nil, false, false),
		evaluated("inv-c", nil, false, false),
		evaluated("valid", gp(1), true, false),
	}

	SortTableA(table)

	assert.Equal(t, "valid", table[0].RecipeName)
	assert.Equal(t, "inv-a", table[1].RecipeName)
	assert.Equal(t, "inv-b", table[2].RecipeName)
	assert.Equal(t, "inv-c", table[3].RecipeName)
}

func TestFilterAlerts(t *testing.T) {
	table := []domain.EvaluatedRecipe{
		evaluated("alpha", gp(9_000_000), true, true),
		evaluated("beta", gp(5_000_000), true, false),
		evaluated("gamma", gp(4_000_000), true, true),
		evaluated("invalid", nil, false, false),
	}

	alerts := FilterAlerts(table)

	require.Len(t, alerts, 2)
	assert.Equal(t, "alpha", alerts[0].RecipeName)
	assert.Equal(t, "gamma", alerts[1].RecipeName)

	assert.Empty(t, FilterAlerts(nil))
}
