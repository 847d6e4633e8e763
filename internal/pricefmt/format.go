// Package pricefmt форматирует цены для отображения: разделители тысяч, центы.
package pricefmt

import (
	"math"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.English)

	// целая часть числа в произвольном тексте; дробная часть не группируется
	numberRe = regexp.MustCompile(`\d+(\.\d+)?`)
)

// GroupDigits расставляет разделители тысяч во всех числах текста: "€250000" -> "€250,000".
func GroupDigits(text string) string {
	return numberRe.ReplaceAllStringFunc(text, func(num string) string {
		intPart, frac := num, ""
		for i := 0; i < len(num); i++ {
			if num[i] == '.' {
				intPart, frac = num[:i], num[i:]
				break
			}
		}
		// короткие группы и числа с ведущим нулем ("€900,000", "007") не трогаем
		if len(intPart) <= 3 || intPart[0] == '0' {
			return num
		}
		n, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return num
		}
		return printer.Sprintf("%d", n) + frac
	})
}

// Thousands - целое значение с разделителями: 250000.4 -> "250,000".
func Thousands(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return printer.Sprintf("%d", decimal.NewFromFloat(v).Round(0).IntPart())
}

// Money - значение с разделителями и двумя знаками: 250000 -> "250,000.00".
func Money(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return printer.Sprintf("%.2f", decimal.NewFromFloat(v).Round(2).InexactFloat64())
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
