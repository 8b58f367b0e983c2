package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMissing(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil value", nil, true},
		{"missing marker", "__MISSING__", true},
		{"missing marker with suffix", "__MISSING__item_name", true},
		{"ocr uncertain marker", "__OCR_UNCERTAIN__Torstol", true},
		{"plain string", "Torstol", false},
		{"empty string", "", false},
		{"number", 42.0, false},
		{"marker not at start", "item__MISSING__", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMissing(tt.value))
		})
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{"float64", 3.5, 3.5, true},
		{"int", 7, 7.0, true},
		{"numeric string", "123.25", 123.25, true},
		{"thousands separators", "1,234,567", 1234567.0, true},
		{"negative string", "-42", -42.0, true},
		{"nil", nil, 0, false},
		{"missing marker", "__MISSING__", 0, false},
		{"ocr marker", "__OCR_UNCERTAIN__12", 0, false},
		{"garbage string", "abc", 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Float(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestInt(t *testing.T) {
	got, ok := Int("4")
	assert.True(t, ok)
	assert.Equal(t, 4, got)

	// Truncates toward zero, matching the float path.
	got, ok = Int(4.9)
	assert.True(t, ok)
	assert.Equal(t, 4, got)

	got, ok = Int(-4.9)
	assert.True(t, ok)
	assert.Equal(t, -4, got)

	_, ok = Int(nil)
	assert.False(t, ok)

	_, ok = Int("__MISSING__")
	assert.False(t, ok)
}

func TestString(t *testing.T) {
	s, ok := String("Ranarr weed")
	assert.True(t, ok)
	assert.Equal(t, "Ranarr weed", s)

	_, ok = String("__MISSING__")
	assert.False(t, ok)

	_, ok = String(12.0)
	assert.False(t, ok)

	_, ok = String(nil)
	assert.False(t, ok)
}
