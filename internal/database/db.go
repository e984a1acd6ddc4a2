package database

import (
	"log"

	"storefront-backend/internal/config"
	"storefront-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	// OrderItem migration: variant_index ekleniyor (AutoMigrate'ten ÖNCE)
	// Eski sipariş satırları variant bilgisini yalnız addaki etikette taşıyordu;
	// kolon nullable kalır, eski satırlar okuma tarafında etiketten çözülür.
	if DB.Migrator().HasTable(&models.OrderItem{}) {
		if !DB.Migrator().HasColumn(&models.OrderItem{}, "variant_index") {
			log.Println("OrderItem.variant_index kolonu ekleniyor...")
			if err := DB.Exec("ALTER TABLE order_items ADD COLUMN variant_index BIGINT").Error; err != nil {
				log.Printf("variant_index kolonu eklenirken hata (zaten var olabilir): %v", err)
			} else {
				log.Println("variant_index kolonu eklendi, eski satırlar NULL kalıyor")
			}
		}
	}

	err = DB.AutoMigrate(
		&models.Store{},
		&models.User{},
		&models.Product{},
		&models.ProductPieceVariant{},
		&models.Catalog{},
		&models.CatalogProduct{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
