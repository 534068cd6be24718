package data

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var copPrinter = message.NewPrinter(language.MustParse("es-CO"))

// FormatCOP renders whole pesos the way es-CO displays them: a dollar sign,
// dots between thousands and no decimals. 350000 becomes "$350.000".
func FormatCOP(pesos int64) string {
	if pesos < 0 {
		return "-$" + copPrinter.Sprintf("%d", -pesos)
	}
	return "$" + copPrinter.Sprintf("%d", pesos)
}
