package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Percent formats a 0-100 progress value, e.g. "45%".
func Percent(p int) string {
	return printer.Sprint(number.Percent(float64(p) / 100))
}

// Count formats n with digit grouping followed by a noun, e.g. "1,234 courses".
func Count(n int, noun string) string {
	return printer.Sprintf("%d %s", n, noun)
}
