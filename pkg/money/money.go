// Package money formatea montos para documentos (PDF, XLSX).
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Format devuelve el monto con separador de miles y 2 decimales, ej. "$1,674.75".
func Format(d decimal.Decimal) string {
	intPart, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// fuera de int64: sin separadores
		return sign(d) + "$" + intPart + "." + frac
	}
	return sign(d) + "$" + printer.Sprintf("%d", n) + "." + frac
}

// Percent formatea un porcentaje sin ceros sobrantes, ej. "10%", "12.5%".
func Percent(d decimal.Decimal) string {
	return d.String() + "%"
}

func sign(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-"
	}
	return ""
}
