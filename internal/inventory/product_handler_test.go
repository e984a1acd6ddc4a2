package inventory

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront-backend/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
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
	))
	return db
}

func TestDeleteProduct_CleansReferences(t *testing.T) {
	db := openTestDB(t)

	p := models.Product{
		StoreID:       1,
		Name:          "Сыр",
		Unit:          "kg",
		BasePrice:     dec("1890"),
		PackagingType: "piece",
		Quantity:      2,
		IsActive:      true,
		PieceVariants: []models.ProductPieceVariant{{Kind: "single", Quantity: 1, Position: 0}},
	}
	require.NoError(t, db.Create(&p).Error)

	cat := models.Catalog{StoreID: 1, Name: "Розница"}
	require.NoError(t, db.Create(&cat).Error)
	require.NoError(t, db.Create(&models.CatalogProduct{CatalogID: cat.ID, ProductID: p.ID}).Error)

	cart := models.Cart{UserID: 1, StoreID: 1, CatalogID: cat.ID}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: cart.ID, ProductID: p.ID, VariantIndex: 0, Quantity: 1, PriceAtAdd: dec("1890")}).Error)

	order := models.Order{Number: "7c2f", UserID: 1, StoreID: 1, CatalogID: cat.ID, Total: dec("1890")}
	require.NoError(t, db.Create(&order).Error)
	pid := p.ID
	require.NoError(t, db.Create(&models.OrderItem{OrderID: order.ID, ProductID: &pid, Name: "Сыр", Quantity: 1, Price: dec("1890")}).Error)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return deleteProduct(tx, &p)
	}))

	// Üyelik, sepet satırı ve piece variant'lar ürünle birlikte gider; katalog
	// çözümlemesi hayalet satır üretemez, sepette adsız satır kalmaz.
	var memberships, cartLines, pieces int64
	db.Model(&models.CatalogProduct{}).Where("product_id = ?", pid).Count(&memberships)
	db.Model(&models.CartItem{}).Where("product_id = ?", pid).Count(&cartLines)
	db.Model(&models.ProductPieceVariant{}).Where("product_id = ?", pid).Count(&pieces)
	assert.Zero(t, memberships)
	assert.Zero(t, cartLines)
	assert.Zero(t, pieces)

	// Sipariş satırı silinmez: referansı koparılır, tarihsel fiyat/adla kalır.
	var item models.OrderItem
	require.NoError(t, db.First(&item, "order_id = ?", order.ID).Error)
	assert.Nil(t, item.ProductID)
	assert.Equal(t, "Сыр", item.Name)
	assert.True(t, item.Price.Equal(dec("1890")))
}
