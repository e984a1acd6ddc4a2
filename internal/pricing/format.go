package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice: gösterim biçimi — en yakın tam para birimine yuvarla, binlikleri
// boşlukla grupla, para birimi ekini sona ekle. Birden çok ekranda kopyalanan
// biçimlendirme buraya toplandı.
func FormatPrice(d decimal.Decimal, suffix string) string {
	s := d.Round(0).StringFixed(0)

	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}

	if suffix != "" {
		b.WriteByte(' ')
		b.WriteString(suffix)
	}
	return b.String()
}
