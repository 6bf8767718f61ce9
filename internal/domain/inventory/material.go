package inventory

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ncmPattern = regexp.MustCompile(`^\d{8}$`)

// ValidNCM indica si el código tiene exactamente 8 dígitos.
func ValidNCM(ncm string) bool {
	return ncmPattern.MatchString(ncm)
}

// NormalizeMaterialName quita acentos, pasa a minúsculas y elimina la "s" final del plural.
// "Papelões" y "papelao" quedan iguales.
func NormalizeMaterialName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, name)
	if err != nil {
		out = name
	}
	out = strings.ToLower(strings.TrimSpace(out))
	return strings.TrimSuffix(out, "s")
}

var (
	kgPerTon           = decimal.NewFromInt(1000)
	defaultPricePerTon = decimal.NewFromInt(800)

	// pricePerTon preço de referência (R$/t) por material normalizado.
	pricePerTon = map[string]decimal.Decimal{
		NormalizeMaterialName("Papel"):    decimal.NewFromInt(800),
		NormalizeMaterialName("Papelão"):  decimal.NewFromInt(600),
		NormalizeMaterialName("Vidro"):    decimal.NewFromInt(1200),
		NormalizeMaterialName("Metal"):    decimal.NewFromInt(1500),
		NormalizeMaterialName("Plástico"): decimal.NewFromInt(1000),
	}
)

// ReferencePricePerTon precio de referencia del material; 800 si no está tabulado.
func ReferencePricePerTon(material string) decimal.Decimal {
	if p, ok := pricePerTon[NormalizeMaterialName(material)]; ok {
		return p
	}
	return defaultPricePerTon
}

// KgToTons convierte kilogramos a toneladas.
func KgToTons(kg decimal.Decimal) decimal.Decimal {
	return kg.Div(kgPerTon)
}

// EstimatedValue valor de referencia de una cantidad (kg) del material.
func EstimatedValue(material string, kg decimal.Decimal) decimal.Decimal {
	return ReferencePricePerTon(material).Mul(KgToTons(kg))
}

// WithinTolerance indica si declared está a no más de tolerance (fracción) de computed.
func WithinTolerance(declared, computed, tolerance decimal.Decimal) bool {
	diff := declared.Sub(computed).Abs()
	return diff.LessThanOrEqual(computed.Mul(tolerance))
}
