package pricing

import "github.com/shopspring/decimal"

type MarkupKind string

const (
	MarkupPercent MarkupKind = "percent"
	MarkupFixed   MarkupKind = "fixed"
)

type Markup struct {
	Kind   MarkupKind
	Amount decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// ResolveSalePrice: alış fiyatı ve kâr kuralından birim satış fiyatını türetir.
// İkisinden biri eksikse basePrice olduğu gibi döner. Bu aşamada yuvarlama
// yapılmaz; yuvarlama yalnızca gösterim sırasında uygulanır. Negatif sonuçlar
// kırpılmaz (kaynak davranışı korunuyor).
func ResolveSalePrice(buyPrice *decimal.Decimal, markup *Markup, basePrice decimal.Decimal) decimal.Decimal {
	if buyPrice == nil || markup == nil {
		return basePrice
	}
	switch markup.Kind {
	case MarkupPercent:
		return buyPrice.Mul(decimal.NewFromInt(1).Add(markup.Amount.Div(oneHundred)))
	case MarkupFixed:
		return buyPrice.Add(markup.Amount)
	}
	return basePrice
}
