package pricing

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"storefront/internal/models"
)

const (
	// FreeShippingThreshold es el subtotal a partir del cual el envío es gratis
	FreeShippingThreshold int64 = 499
	// ShippingFee es el costo fijo de envío por debajo del umbral
	ShippingFee int64 = 50
)

// taxRate es el 18% de GST aplicado sobre el subtotal
var taxRate = decimal.New(18, -2)

// printer agrupa dígitos al estilo en-IN (1,00,000)
var printer = message.NewPrinter(language.MustParse("en-IN"))

// FormatPrice renderiza un monto entero en rupias con agrupación local
func FormatPrice(amount int64) string {
	return printer.Sprintf("₹%v", number.Decimal(amount))
}

// FormatAmount renderiza un monto decimal con hasta dos decimales
func FormatAmount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("₹%v", number.Decimal(f,
		number.MaxFractionDigits(2),
		number.MinFractionDigits(0),
	))
}

// DiscountPercentage calcula el porcentaje de descuento redondeado.
// Devuelve 0 cuando el precio original es <= 0 o no supera al actual.
func DiscountPercentage(original, current int64) int {
	if original <= 0 || current >= original {
		return 0
	}
	return int(math.Round(float64(original-current) / float64(original) * 100))
}

// Totals son los montos derivados del carrito; se recalculan en cada
// cambio y nunca se persisten
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// CartTotals calcula subtotal, envío, impuesto y total del carrito
func CartTotals(cart []models.CartItem) Totals {
	subtotal := decimal.Zero
	for _, item := range cart {
		line := decimal.NewFromInt(item.Price).Mul(decimal.NewFromInt(item.Quantity))
		subtotal = subtotal.Add(line)
	}

	shipping := decimal.NewFromInt(ShippingFee)
	if subtotal.GreaterThan(decimal.NewFromInt(FreeShippingThreshold)) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(taxRate)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
