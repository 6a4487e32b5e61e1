package repositories_test

import (
	"fmt"
	"testing"

	"ordersystem/internal/models"
	"ordersystem/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func TestGORMOrderRepository_PlaceOrder_CommitsEverything(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	require.NoError(t, db.Create(&models.Product{ID: "prod-1", Name: "Mouse", Price: 10.00, Stock: 5}).Error)
	require.NoError(t, db.Create(&models.CartItem{ID: "item-1", UserID: "user-1", ProductID: "prod-1", Quantity: 2}).Error)

	order := &models.Order{
		UserID:      "user-1",
		TotalAmount: 20.00,
		Paid:        true,
		Items: []models.OrderItem{
			{ProductID: "prod-1", Quantity: 2, Price: 10.00},
		},
	}
	require.NoError(t, repo.PlaceOrder(order))
	assert.NotEmpty(t, order.ID)

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", "prod-1").Error)
	assert.Equal(t, 3, product.Stock)

	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&cartCount).Error)
	assert.Zero(t, cartCount)

	got, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	assert.True(t, got.Paid)
	assert.InDelta(t, 20.00, got.TotalAmount, 0.001)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "prod-1", got.Items[0].ProductID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.InDelta(t, 10.00, got.Items[0].Price, 0.001)
}

func TestGORMOrderRepository_PlaceOrder_RollsBackOnStockShortfall(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	// First line is satisfiable, second is not: nothing may persist.
	require.NoError(t, db.Create(&models.Product{ID: "prod-1", Name: "Mouse", Price: 10.00, Stock: 5}).Error)
	require.NoError(t, db.Create(&models.Product{ID: "prod-2", Name: "Keyboard", Price: 80.00, Stock: 1}).Error)
	require.NoError(t, db.Create(&models.CartItem{ID: "item-1", UserID: "user-1", ProductID: "prod-1", Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.CartItem{ID: "item-2", UserID: "user-1", ProductID: "prod-2", Quantity: 3}).Error)

	order := &models.Order{
		UserID:      "user-1",
		TotalAmount: 260.00,
		Paid:        true,
		Items: []models.OrderItem{
			{ProductID: "prod-1", Quantity: 2, Price: 10.00},
			{ProductID: "prod-2", Quantity: 3, Price: 80.00},
		},
	}
	err := repo.PlaceOrder(order)
	var stockErr *models.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "prod-2", stockErr.ProductID)

	var prod1, prod2 models.Product
	require.NoError(t, db.First(&prod1, "id = ?", "prod-1").Error)
	require.NoError(t, db.First(&prod2, "id = ?", "prod-2").Error)
	assert.Equal(t, 5, prod1.Stock, "first line's decrement must roll back")
	assert.Equal(t, 1, prod2.Stock)

	var orderCount, cartCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&cartCount).Error)
	assert.Zero(t, orderCount)
	assert.Equal(t, int64(2), cartCount)
}

func TestGORMOrderRepository_PlaceOrder_MissingProduct(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order := &models.Order{
		UserID: "user-1",
		Paid:   true,
		Items: []models.OrderItem{
			{ProductID: "gone", Quantity: 1, Price: 10.00},
		},
	}
	err := repo.PlaceOrder(order)
	var stockErr *models.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, -1, stockErr.Available)
}

func TestGORMOrderRepository_GetByID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	_, err := repo.GetByID("nope")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
