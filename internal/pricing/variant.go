package pricing

import "strings"

// Variant indeksi pozisyoneldir ve sabit kalmak zorundadır: sepetler ve sipariş
// satırları ürünlere (productID, variantIndex) ikilisiyle referans verir.
const (
	VariantFull    = 0
	VariantHalf    = 1
	VariantQuarter = 2
	VariantPortion = 3
)

// Piece ürünlerde variant indeksi, tanımlı piece variant listesindeki sıradır
// (koli=0, tek=1, ...). Head ürünlerde yukarıdaki sabitler geçerlidir.

var variantLabels = map[int]string{
	VariantFull:    "Целая",
	VariantHalf:    "½",
	VariantQuarter: "¼",
	VariantPortion: "Порция",
}

var labelVariants = map[string]int{
	"Целая":  VariantFull,
	"½":      VariantHalf,
	"¼":      VariantQuarter,
	"Порция": VariantPortion,
}

// VariantLabel: head variant indeksinin müşteriye gösterilen etiketi.
// Bilinmeyen indeks tam ürün etiketine düşer.
func VariantLabel(index int) string {
	if l, ok := variantLabels[index]; ok {
		return l
	}
	return variantLabels[VariantFull]
}

// NameWithVariant: sipariş satırlarının sakladığı biçim; variant etiketi
// parantez içinde ürün adının sonuna eklenir. Tam ürün ek almaz.
func NameWithVariant(name string, index int) string {
	if index == VariantFull {
		return name
	}
	return name + " (" + VariantLabel(index) + ")"
}

// PieceLabel: adetli variant'ın müşteriye gösterilen etiketi.
func PieceLabel(kind PieceVariantKind) string {
	if kind == PieceBox {
		return "Коробка"
	}
	return "Штука"
}

// DisplayName: satır adının saklanan biçimi, paketleme tipine göre doğru
// variant etiketiyle. Piece ürünlerde etiket tanımlı variant'tan gelir ve
// kesim sözlüğüne asla düşülmez; head ürünler kesim sözlüğünü kullanır;
// plain ürünler ek almaz.
func DisplayName(name string, pkg Packaging, index int) string {
	switch pkg.Type {
	case PackagingPiece:
		for i, pv := range pkg.PieceVariants {
			if i == index {
				return name + " (" + PieceLabel(pv.Kind) + ")"
			}
		}
		return name
	case PackagingHead:
		return NameWithVariant(name, index)
	}
	return name
}

// ParseVariantLabel: snapshot ürün adının sonundaki parantezli etiketten
// variant indeksini geri kazanır. Ek yoksa veya tanınmıyorsa Full döner,
// asla hata üretmez.
func ParseVariantLabel(name string) int {
	name = strings.TrimSpace(name)
	if !strings.HasSuffix(name, ")") {
		return VariantFull
	}
	open := strings.LastIndex(name, "(")
	if open < 0 {
		return VariantFull
	}
	label := strings.TrimSpace(name[open+1 : len(name)-1])
	if idx, ok := labelVariants[label]; ok {
		return idx
	}
	return VariantFull
}

// StripVariantLabel: tanınan bir variant eki varsa addan ayıklar, çıplak ürün
// adını döndürür.
func StripVariantLabel(name string) string {
	trimmed := strings.TrimSpace(name)
	if !strings.HasSuffix(trimmed, ")") {
		return trimmed
	}
	open := strings.LastIndex(trimmed, "(")
	if open < 0 {
		return trimmed
	}
	label := strings.TrimSpace(trimmed[open+1 : len(trimmed)-1])
	if _, ok := labelVariants[label]; !ok {
		return trimmed
	}
	return strings.TrimSpace(trimmed[:open])
}
