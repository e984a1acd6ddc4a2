package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestResolveSalePrice(t *testing.T) {
	tests := []struct {
		name      string
		buyPrice  *decimal.Decimal
		markup    *Markup
		basePrice string
		want      string
	}{
		{
			name:      "yüzde kâr",
			buyPrice:  decPtr("2200"),
			markup:    &Markup{Kind: MarkupPercent, Amount: dec("30")},
			basePrice: "999",
			want:      "2860",
		},
		{
			name:      "sabit kâr",
			buyPrice:  decPtr("2200"),
			markup:    &Markup{Kind: MarkupFixed, Amount: dec("450")},
			basePrice: "999",
			want:      "2650",
		},
		{
			name:      "alış fiyatı yoksa basePrice",
			buyPrice:  nil,
			markup:    &Markup{Kind: MarkupPercent, Amount: dec("30")},
			basePrice: "1890",
			want:      "1890",
		},
		{
			name:      "kâr kuralı yoksa basePrice",
			buyPrice:  decPtr("2200"),
			markup:    nil,
			basePrice: "1890",
			want:      "1890",
		},
		{
			name:      "negatif sonuç kırpılmaz",
			buyPrice:  decPtr("100"),
			markup:    &Markup{Kind: MarkupFixed, Amount: dec("-150")},
			basePrice: "0",
			want:      "-50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSalePrice(tt.buyPrice, tt.markup, dec(tt.basePrice))
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestResolveSalePrice_NoRounding(t *testing.T) {
	// %33 ile kesirli sonuç: yuvarlama yalnız gösterimde yapılır.
	got := ResolveSalePrice(decPtr("100"), &Markup{Kind: MarkupPercent, Amount: dec("33.5")}, dec("0"))
	assert.True(t, got.Equal(dec("133.5")), "got %s", got)
}
