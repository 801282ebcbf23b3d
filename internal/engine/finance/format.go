package finance

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders money and percentages for documents.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

func NewFormatter(currencySymbol, locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return &Formatter{symbol: currencySymbol, printer: message.NewPrinter(tag)}
}

// FormatMoney rounds to two places and groups digits per the locale,
// e.g. "$1,234.50" or "-$5.00".
func (f *Formatter) FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	v, _ := d.Round(2).Float64()
	return sign + f.symbol + f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

// FormatPercent prints up to two fraction digits, e.g. "10%" or "7.25%".
func (f *Formatter) FormatPercent(d decimal.Decimal) string {
	v, _ := d.Round(2).Float64()
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2))) + "%"
}
