package utils

import (
	"strings"
	"time"

	"github.com/farxc/sil_dashboard/internal/programacao/types"
)

// ParseForecast parses a dd/mm/yyyy HH:MM:SS timestamp. Anything else yields
// the zero time, which the pipeline treats as null.
func ParseForecast(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(types.ForecastLayout, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
