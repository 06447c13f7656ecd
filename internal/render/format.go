package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Money formats v as Brazilian reais, e.g. "R$ 3.850,00".
func Money(v float64) string {
	return printer.Sprintf("R$ %.2f", v)
}

func Int(v int) string {
	return printer.Sprintf("%d", v)
}

func Percent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}
