package store

import (
	"fmt"
	"testing"

	"mini-ecommerce-api/config"
	"mini-ecommerce-api/models"

	"gorm.io/gorm"
)

// testDB opens a fresh in-memory sqlite database per test.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := config.OpenDB(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price, Stock: stock}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u, err := NewUsers(db).Create("Test User", email, "pw123456", "")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}
