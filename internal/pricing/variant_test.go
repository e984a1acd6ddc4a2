package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantLabelRoundTrip(t *testing.T) {
	// Etiket sözlüğü {Целая, ½, ¼, Порция} ile {0,1,2,3} birebir eşleşir.
	for idx := VariantFull; idx <= VariantPortion; idx++ {
		name := NameWithVariant("Сыр", idx)
		assert.Equal(t, idx, ParseVariantLabel(name), "name %q", name)
		assert.Equal(t, "Сыр", StripVariantLabel(name))
	}
}

func TestNameWithVariant(t *testing.T) {
	assert.Equal(t, "Сыр", NameWithVariant("Сыр", VariantFull))
	assert.Equal(t, "Сыр (½)", NameWithVariant("Сыр", VariantHalf))
	assert.Equal(t, "Сыр (¼)", NameWithVariant("Сыр", VariantQuarter))
	assert.Equal(t, "Сыр (Порция)", NameWithVariant("Сыр", VariantPortion))
}

func TestParseVariantLabel_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"ek yok", "Сыр", VariantFull},
		{"tanınmayan etiket", "Сыр (большой)", VariantFull},
		{"boş ad", "", VariantFull},
		{"parantez açılmamış", "Сыр ½)", VariantFull},
		{"etiket etrafında boşluk", "Сыр ( ½ )", VariantHalf},
		{"ad içinde parantez", "Сыр (выдержанный) (¼)", VariantQuarter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseVariantLabel(tt.in))
		})
	}
}

func TestStripVariantLabel_KeepsUnrecognizedSuffix(t *testing.T) {
	// Tanınmayan parantezli ek ürün adının parçasıdır, ayıklanmaz.
	assert.Equal(t, "Сыр (большой)", StripVariantLabel("Сыр (большой)"))
}

func TestVariantLabel_UnknownIndex(t *testing.T) {
	assert.Equal(t, "Целая", VariantLabel(99))
}

func TestPieceLabel(t *testing.T) {
	assert.Equal(t, "Коробка", PieceLabel(PieceBox))
	assert.Equal(t, "Штука", PieceLabel(PieceSingle))
}

func TestDisplayName_PackagingAware(t *testing.T) {
	piece := Packaging{
		Type: PackagingPiece,
		PieceVariants: []PieceVariant{
			{Kind: PieceBox, Quantity: 12},
			{Kind: PieceSingle, Quantity: 1},
		},
	}

	// Piece indeksi tanımlı variant listesinden etiketlenir; indeks 1 asla
	// "(½)" olmaz.
	assert.Equal(t, "Конфеты (Коробка)", DisplayName("Конфеты", piece, 0))
	assert.Equal(t, "Конфеты (Штука)", DisplayName("Конфеты", piece, 1))
	// Tanımsız piece indeksi ek almaz, kesim sözlüğüne düşmez.
	assert.Equal(t, "Конфеты", DisplayName("Конфеты", piece, 5))

	head := Packaging{Type: PackagingHead, UnitWeight: decPtr("35")}
	assert.Equal(t, "Сыр", DisplayName("Сыр", head, VariantFull))
	assert.Equal(t, "Сыр (½)", DisplayName("Сыр", head, VariantHalf))

	assert.Equal(t, "Хлеб", DisplayName("Хлеб", Packaging{Type: PackagingPlain}, 0))
}
