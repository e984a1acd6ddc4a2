package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headProduct() Product {
	return Product{
		BasePrice: dec("1890"),
		Packaging: headPackaging("35"),
		Quantity:  4,
		IsActive:  true,
	}
}

func statusPtr(s Status) *Status { return &s }

func TestResolveForCatalog_NoOverride(t *testing.T) {
	res := ResolveForCatalog(headProduct(), nil)

	require.NotNil(t, res.VariantPrices)
	assert.True(t, res.VariantPrices[VariantFull].Equal(dec("66150")))
	assert.Equal(t, StatusInStock, res.Status)
	assert.True(t, res.Visible)
	assert.True(t, res.CanOrder)
}

func TestResolveForCatalog_PerKgOverride(t *testing.T) {
	// Katalog override'ı kg BAŞINA fiyattır: full için w, half için w/2,
	// quarter için w/4 ile çarpılır. Taban fiyattan bağımsızdır.
	ov := &CatalogOverride{
		FullPerKg:    decPtr("2000"),
		QuarterPerKg: decPtr("2100"),
	}

	res := ResolveForCatalog(headProduct(), ov)
	require.NotNil(t, res.VariantPrices)

	// 2000/kg * 35kg = 70000; taban 66150 tamamen yok sayılır.
	assert.True(t, res.VariantPrices[VariantFull].Equal(dec("70000")), "full: %s", res.VariantPrices[VariantFull])
	// 2100/kg * 8.75kg = 18375
	assert.True(t, res.VariantPrices[VariantQuarter].Equal(dec("18375")), "quarter: %s", res.VariantPrices[VariantQuarter])
	// Override'sız half türetilmiş değerde kalır.
	assert.True(t, res.VariantPrices[VariantHalf].Equal(dec("33075")))
}

func TestResolveForCatalog_PortionOverrideIsFixed(t *testing.T) {
	// Porsiyon override'ı nihai fiyattır, ağırlıkla ÇARPILMAZ. full/half/quarter
	// ile asimetriktir; kaynak davranış aynen korunur.
	ov := &CatalogOverride{PortionPrice: decPtr("450")}

	res := ResolveForCatalog(headProduct(), ov)
	require.NotNil(t, res.VariantPrices)
	assert.True(t, res.VariantPrices[VariantPortion].Equal(dec("450")))
}

func TestResolveForCatalog_CustomPriceReplacedByCatalogOverride(t *testing.T) {
	// Katalog override'ı, ürün seviyesindeki nihai fiyat override'ının da
	// üzerine yazar: harmanlama yok, yerine geçme var.
	p := headProduct()
	p.Packaging.Custom.Full = decPtr("60000")
	ov := &CatalogOverride{FullPerKg: decPtr("2000")}

	res := ResolveForCatalog(p, ov)
	assert.True(t, res.VariantPrices[VariantFull].Equal(dec("70000")))
}

func TestResolveForCatalog_PieceOverridesNotApplied(t *testing.T) {
	// Piece modda fiyat override'ı uygulanmaz (kaynak davranışı); durum
	// override'ı yine geçerlidir.
	p := Product{
		BasePrice: dec("85"),
		Packaging: Packaging{
			Type:          PackagingPiece,
			PieceVariants: []PieceVariant{{Kind: PieceBox, Quantity: 12}},
		},
		Quantity: 10,
		IsActive: true,
	}
	ov := &CatalogOverride{
		FullPerKg: decPtr("2000"),
		Status:    statusPtr(StatusPreOrder),
	}

	res := ResolveForCatalog(p, ov)
	require.NotNil(t, res.VariantPrices)
	assert.True(t, res.VariantPrices[0].Equal(dec("1020")))
	assert.Equal(t, StatusPreOrder, res.Status)
}

func TestResolveForCatalog_StatusChain(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		isActive bool
		override *CatalogOverride
		status   Status
		visible  bool
		canOrder bool
	}{
		{"aktif ve stokta", 3, true, nil, StatusInStock, true, true},
		{"stok yok", 0, true, nil, StatusOutOfStock, true, false},
		{"pasif ürün", 3, false, nil, StatusOutOfStock, true, false},
		{"hidden her durumda gizler", 3, true, &CatalogOverride{Status: statusPtr(StatusHidden)}, StatusHidden, false, false},
		{"pre_order stok olmadan da sipariş alır", 0, true, &CatalogOverride{Status: statusPtr(StatusPreOrder)}, StatusPreOrder, true, true},
		{"coming_soon görünür ama satılamaz", 3, true, &CatalogOverride{Status: statusPtr(StatusComingSoon)}, StatusComingSoon, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := headProduct()
			p.Quantity = tt.quantity
			p.IsActive = tt.isActive

			res := ResolveForCatalog(p, tt.override)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.visible, res.Visible)
			assert.Equal(t, tt.canOrder, res.CanOrder)
		})
	}
}

func TestResolveForCatalog_HiddenStillPriced(t *testing.T) {
	// Gizli ürünün fiyatları yine hesaplanır (admin önizlemesi); yalnız
	// Visible=false işaretlenir.
	ov := &CatalogOverride{Status: statusPtr(StatusHidden)}

	res := ResolveForCatalog(headProduct(), ov)
	require.NotNil(t, res.VariantPrices)
	assert.True(t, res.VariantPrices[VariantFull].Equal(dec("66150")))
	assert.False(t, res.Visible)
}

func TestResolveForCatalog_Idempotent(t *testing.T) {
	p := headProduct()
	ov := &CatalogOverride{FullPerKg: decPtr("2000"), Status: statusPtr(StatusPreOrder)}

	first := ResolveForCatalog(p, ov)
	second := ResolveForCatalog(p, ov)

	assert.Equal(t, first.Status, second.Status)
	require.Equal(t, len(first.VariantPrices), len(second.VariantPrices))
	for k, v := range first.VariantPrices {
		assert.True(t, v.Equal(second.VariantPrices[k]), "variant %d", k)
	}
}

func TestResolutionVariantPrice_PlainFallback(t *testing.T) {
	p := Product{BasePrice: dec("250"), Packaging: Packaging{Type: PackagingPlain}, Quantity: 1, IsActive: true}

	res := ResolveForCatalog(p, nil)
	require.Nil(t, res.VariantPrices)

	price, ok := res.VariantPrice(VariantFull)
	require.True(t, ok)
	assert.True(t, price.Equal(dec("250")))

	_, ok = res.VariantPrice(VariantHalf)
	assert.False(t, ok)
}

func TestResolveForCatalog_MarkupFeedsVariants(t *testing.T) {
	p := Product{
		BuyPrice:  decPtr("2200"),
		Markup:    &Markup{Kind: MarkupPercent, Amount: dec("30")},
		BasePrice: dec("999"),
		Packaging: headPackaging("2"),
		Quantity:  1,
		IsActive:  true,
	}

	res := ResolveForCatalog(p, nil)
	assert.True(t, res.UnitPrice.Equal(dec("2860")))
	assert.True(t, res.VariantPrices[VariantFull].Equal(dec("5720")))
}
