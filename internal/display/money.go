// Package display formats ledger values for people.
package display

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money formats amounts in one currency for one locale.
type Money struct {
	printer *message.Printer
	unit    currency.Unit
}

func NewMoney(tag language.Tag, unit currency.Unit) *Money {
	return &Money{printer: message.NewPrinter(tag), unit: unit}
}

// INR formats rupees with Indian digit grouping.
func INR() *Money {
	return NewMoney(language.MustParse("en-IN"), currency.INR)
}

// Format renders amount with the currency symbol; negatives lead with the sign.
func (m *Money) Format(amount float64) string {
	if amount < 0 {
		return "-" + m.format(-amount)
	}
	return m.format(amount)
}

func (m *Money) format(amount float64) string {
	return m.printer.Sprint(currency.Symbol(m.unit.Amount(amount)))
}

// Signed prefixes income with + and expense with -.
func (m *Money) Signed(amount float64, income bool) string {
	if income {
		return "+" + m.format(math.Abs(amount))
	}
	return "-" + m.format(math.Abs(amount))
}
