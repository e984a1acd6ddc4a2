package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in     string
		suffix string
		want   string
	}{
		{"66150", "₽", "66 150 ₽"},
		{"16537.5", "₽", "16 538 ₽"},
		{"999", "₽", "999 ₽"},
		{"1000", "₽", "1 000 ₽"},
		{"1234567", "₽", "1 234 567 ₽"},
		{"0", "₽", "0 ₽"},
		{"85", "", "85"},
		{"-1500", "₽", "-1 500 ₽"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(dec(tt.in), tt.suffix))
		})
	}
}
