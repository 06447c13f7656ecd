package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	cases := map[string]int{
		"Março":    3,
		"marco":    3,
		"DEZEMBRO": 12,
		"1":        1,
		"Todos":    0,
		"":         0,
	}
	for in, want := range cases {
		got, err := ParseMonth(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"13", "0", "March", "abc"} {
		_, err := ParseMonth(bad)
		assert.ErrorIs(t, err, ErrInvalidSelection, bad)
	}
}

func TestParseSelection(t *testing.T) {
	sel, err := ParseSelection("SUL", "todos", "mês", "2024", "Março")
	require.NoError(t, err)
	assert.Equal(t, Selection{Region: "SUL", Branch: All, Mode: ModeMonth, Year: 2024, Month: 3}, sel)
	assert.True(t, sel.AllBranches())
	assert.False(t, sel.AllRegions())

	sel, err = ParseSelection("", "", "", "", "5")
	require.NoError(t, err)
	assert.Equal(t, DefaultSelection(), sel, "month is ignored in year mode")
}

func TestParseSelection_Invalid(t *testing.T) {
	_, err := ParseSelection("", "", "week", "", "")
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = ParseSelection("", "", "year", "20x4", "")
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = ParseSelection("", "", "month", "All", "Março")
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestYearAndMonthOptions(t *testing.T) {
	assert.Equal(t, []string{All, "2023", "2024"}, YearOptions([]int{2023, 2024}))
	opts := MonthOptions()
	assert.Len(t, opts, 12)
	assert.Equal(t, "Janeiro", opts[0])
}
