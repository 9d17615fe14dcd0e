package xlsheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidColor(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"", true},
		{"FFFFFF", true},
		{"1f4e79", true},
		{"00aAbB", true},
		{"FFF", false},
		{"FFFFFFF", false},
		{"#FFFFFF", false},
		{"GGGGGG", false},
		{"12345 ", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidColor(tt.in), "%q", tt.in)
	}
}

func TestIsValidColor_EveryCharacter(t *testing.T) {
	const hex = "0123456789abcdefABCDEF"
	for c := 0; c < 128; c++ {
		s := "ABCDE" + string(rune(c))
		want := strings.ContainsRune(hex, rune(c))
		assert.Equal(t, want, IsValidColor(s), "%q", s)
	}
}

func TestCheckColor_Uppercases(t *testing.T) {
	c, err := checkColor("fill color", "1f4e79")
	require.NoError(t, err)
	assert.Equal(t, "1F4E79", c)

	_, err = checkColor("fill color", "blue")
	assert.ErrorIs(t, err, ErrInvalidColor)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fill color", verr.Field)
}

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "1F4E79", normalizeColor("FF1F4E79"))
	assert.Equal(t, "ABCDEF", normalizeColor("#abcdef"))
	assert.Equal(t, "", normalizeColor(""))
	assert.Equal(t, "", normalizeColor("theme"))
}
