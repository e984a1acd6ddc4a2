package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headPackaging(weight string) Packaging {
	return Packaging{Type: PackagingHead, UnitWeight: decPtr(weight)}
}

func TestComputeVariantPrices_Head(t *testing.T) {
	prices := ComputeVariantPrices(dec("1890"), headPackaging("35"))
	require.NotNil(t, prices)

	assert.True(t, prices[VariantFull].Equal(dec("66150")), "full: %s", prices[VariantFull])
	assert.True(t, prices[VariantHalf].Equal(dec("33075")), "half: %s", prices[VariantHalf])
	assert.True(t, prices[VariantQuarter].Equal(dec("16537.5")), "quarter: %s", prices[VariantQuarter])

	// Porsiyon asla otomatik türetilmez.
	_, ok := prices[VariantPortion]
	assert.False(t, ok)
}

func TestComputeVariantPrices_HalfQuarterDerivedFromFull(t *testing.T) {
	// Override'sız head üründe half == full/2 ve quarter == full/4 tam olarak
	// tutar; hepsi aynı salePerUnit*w ailesinden türetilir.
	prices := ComputeVariantPrices(dec("1234.56"), headPackaging("7.2"))
	require.NotNil(t, prices)

	assert.True(t, prices[VariantHalf].Equal(prices[VariantFull].Div(decimal.NewFromInt(2))))
	assert.True(t, prices[VariantQuarter].Equal(prices[VariantFull].Div(decimal.NewFromInt(4))))
}

func TestComputeVariantPrices_CustomPricesWin(t *testing.T) {
	pkg := headPackaging("35")
	pkg.Custom = CustomVariantPrices{
		Half:    decPtr("30000"),
		Portion: decPtr("500"),
	}

	prices := ComputeVariantPrices(dec("1890"), pkg)
	require.NotNil(t, prices)

	// Ürün seviyesi override NİHAİ fiyattır, ağırlıkla çarpılmaz.
	assert.True(t, prices[VariantHalf].Equal(dec("30000")))
	assert.True(t, prices[VariantPortion].Equal(dec("500")))
	// Override'sız kesimler türetilmiş değerde kalır.
	assert.True(t, prices[VariantFull].Equal(dec("66150")))
	assert.True(t, prices[VariantQuarter].Equal(dec("16537.5")))
}

func TestComputeVariantPrices_HeadWithoutWeight(t *testing.T) {
	// unitWeight eksik veya <= 0: plain gibi davran, variant üretme.
	assert.Nil(t, ComputeVariantPrices(dec("1890"), Packaging{Type: PackagingHead}))
	assert.Nil(t, ComputeVariantPrices(dec("1890"), headPackaging("0")))
	assert.Nil(t, ComputeVariantPrices(dec("1890"), headPackaging("-3")))
}

func TestComputeVariantPrices_Plain(t *testing.T) {
	assert.Nil(t, ComputeVariantPrices(dec("250"), Packaging{Type: PackagingPlain}))
}

func TestComputeVariantPrices_Piece(t *testing.T) {
	pkg := Packaging{
		Type: PackagingPiece,
		PieceVariants: []PieceVariant{
			{Kind: PieceBox, Quantity: 12},
			{Kind: PieceSingle, Quantity: 1},
		},
	}

	prices := ComputeVariantPrices(dec("85"), pkg)
	require.NotNil(t, prices)
	require.Len(t, prices, 2)

	// Variant indeksi tanım sırasıdır: koli=0, tek=1.
	assert.True(t, prices[0].Equal(dec("1020")))
	assert.True(t, prices[1].Equal(dec("85")))
}

func TestComputeVariantPrices_PieceWithoutVariants(t *testing.T) {
	assert.Nil(t, ComputeVariantPrices(dec("85"), Packaging{Type: PackagingPiece}))
}

func TestComputeVariantPrices_MonotonicityNotEnforced(t *testing.T) {
	// Bilinen boşluk: full >= half >= quarter sıralaması hiçbir yerde
	// doğrulanmaz. Merchant yarımı tamdan pahalı fiyatlayabilir ve motor buna
	// ses çıkarmaz; UI düzeni bu sıralamayı varsayar ama motor garanti etmez.
	pkg := headPackaging("10")
	pkg.Custom = CustomVariantPrices{Half: decPtr("999999")}

	prices := ComputeVariantPrices(dec("100"), pkg)
	require.NotNil(t, prices)
	assert.True(t, prices[VariantHalf].GreaterThan(prices[VariantFull]))
}

func TestFirstPrice(t *testing.T) {
	a := dec("1")
	b := dec("2")

	assert.Nil(t, firstPrice())
	assert.Nil(t, firstPrice(fixed(nil)))
	assert.True(t, firstPrice(fixed(nil), fixed(&b)).Equal(b))
	assert.True(t, firstPrice(fixed(&a), fixed(&b)).Equal(a))
	assert.True(t, firstPrice(fixed(nil), derived(b)).Equal(b))
}
