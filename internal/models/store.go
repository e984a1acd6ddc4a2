package models

import "time"

// Store: platformdaki bir satıcı (tenant). Her mağaza kendi ürün listesini ve
// kataloglarını yönetir.
type Store struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"size:100;not null;unique"`
	Slug           string `gorm:"size:100;not null;uniqueIndex"` // vitrin URL'inde kullanılır
	Description    string `gorm:"size:255"`
	Phone          string `gorm:"size:50"` // Opsiyonel telefon
	CurrencySuffix string `gorm:"size:10"` // boşsa global varsayılan kullanılır
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Users []User
}
