package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/farxc/sil_dashboard/internal/programacao/types"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// All selects every value of a dimension.
const All = "All"

type Mode string

const (
	ModeYear  Mode = "year"
	ModeMonth Mode = "month"
)

var ErrInvalidSelection = errors.New("invalid selection")

// Selection is the set of filter values chosen for one dashboard render.
// Year and Month use 0 for All.
type Selection struct {
	Region string `json:"region"`
	Branch string `json:"branch"`
	Mode   Mode   `json:"mode"`
	Year   int    `json:"year,omitempty"`
	Month  int    `json:"month,omitempty"`
}

func DefaultSelection() Selection {
	return Selection{Region: All, Branch: All, Mode: ModeYear}
}

// IsAll reports whether a raw filter value means All. "Todos" is accepted for
// links built against the Portuguese labels.
func IsAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All) || strings.EqualFold(v, "Todos")
}

func normalizeAll(v string) string {
	if IsAll(v) {
		return All
	}
	return strings.TrimSpace(v)
}

// fold lowercases s and strips diacritics. Chains are stateful, so one is
// built per call.
func fold(s string) string {
	foldAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(foldAccents, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// ParseMonth accepts 1-12 or a Portuguese month name, accents optional.
// All maps to 0.
func ParseMonth(v string) (int, error) {
	if IsAll(v) {
		return 0, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("%w: month %d out of range", ErrInvalidSelection, n)
		}
		return n, nil
	}
	want := fold(v)
	for i, name := range types.MonthNames {
		if fold(name) == want {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown month %q", ErrInvalidSelection, v)
}

// ParseYear accepts a four digit year or All (0).
func ParseYear(v string) (int, error) {
	if IsAll(v) {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 || n > 9999 {
		return 0, fmt.Errorf("%w: invalid year %q", ErrInvalidSelection, v)
	}
	return n, nil
}

func ParseMode(v string) (Mode, error) {
	switch fold(v) {
	case "", "year", "ano":
		return ModeYear, nil
	case "month", "mes":
		return ModeMonth, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidSelection, v)
	}
}

// ParseSelection builds a validated Selection from raw query or flag values.
func ParseSelection(region, branch, mode, year, month string) (Selection, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return Selection{}, err
	}
	y, err := ParseYear(year)
	if err != nil {
		return Selection{}, err
	}
	mo, err := ParseMonth(month)
	if err != nil {
		return Selection{}, err
	}

	sel := Selection{
		Region: normalizeAll(region),
		Branch: normalizeAll(branch),
		Mode:   m,
		Year:   y,
		Month:  mo,
	}
	if sel.Mode == ModeYear {
		sel.Month = 0
	}
	return sel, sel.Validate()
}

func (s Selection) Validate() error {
	switch s.Mode {
	case ModeYear:
	case ModeMonth:
		if s.Year == 0 || s.Month == 0 {
			return fmt.Errorf("%w: month mode needs a specific year and month", ErrInvalidSelection)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSelection, s.Mode)
	}
	if s.Month < 0 || s.Month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidSelection, s.Month)
	}
	return nil
}

func (s Selection) AllBranches() bool {
	return s.Branch == "" || s.Branch == All
}

func (s Selection) AllRegions() bool {
	return s.Region == "" || s.Region == All
}

// YearOptions returns All followed by the known years.
func YearOptions(years []int) []string {
	out := make([]string, 0, len(years)+1)
	out = append(out, All)
	for _, y := range years {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

func MonthOptions() []string {
	return types.MonthNames[:]
}
