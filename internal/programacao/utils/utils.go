package utils

import (
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/samber/lo"
)

func HasColumn(df *dataframe.DataFrame, col string) bool {
	if df == nil {
		return false
	}
	return lo.Contains(df.Names(), col)
}

// cell reads an element as a trimmed string. NA and the literal "NaN" gota
// writes for absent values both read as "".
func cell(el series.Element) string {
	if el.IsNA() {
		return ""
	}
	v := strings.TrimSpace(el.String())
	if v == "NaN" {
		return ""
	}
	return v
}

// ColumnValues returns every cell of col trimmed, with NA cells read as "".
// A missing column yields Nrow empty strings.
func ColumnValues(df *dataframe.DataFrame, col string) []string {
	if df == nil {
		return nil
	}
	out := make([]string, df.Nrow())
	if !HasColumn(df, col) {
		return out
	}
	s := df.Col(col)
	for i := range out {
		out[i] = cell(s.Elem(i))
	}
	return out
}
