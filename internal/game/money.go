package game

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Cents is a money amount in the smallest currency unit. All economic state
// is integral; fractional currency never exists in a committed state.
type Cents int64

// printer renders grouped digits ("4,992") for player-facing amounts.
var printer = message.NewPrinter(language.AmericanEnglish)

// String formats the amount as dollars, e.g. "$4,992.00" or "-$0.50".
func (c Cents) String() string {
	sign := ""
	v := c
	if v < 0 {
		sign = "-"
		v = -v
	}
	return printer.Sprintf("%s$%d.%02d", sign, int64(v/100), int64(v%100))
}

// Dollars returns the whole-dollar part, truncated toward zero.
func (c Cents) Dollars() int64 {
	return int64(c) / 100
}
