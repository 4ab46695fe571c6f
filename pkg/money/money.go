// Package money formatea montos en pesos colombianos para presentación (PDF, respuestas).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// FormatCOP redondea al peso y agrega separadores de miles: 1234567.6 -> "$ 1.234.568".
func FormatCOP(d decimal.Decimal) string {
	n := d.Round(0).IntPart()
	if n < 0 {
		return "-$ " + printer.Sprintf("%d", -n)
	}
	return "$ " + printer.Sprintf("%d", n)
}

// FormatPercent porcentaje con dos decimales: 18 -> "18.00%".
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
