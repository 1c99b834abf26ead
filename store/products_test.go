package store

import (
	"errors"
	"testing"

	"mini-ecommerce-api/models"
)

func TestUpdateProductNotFound(t *testing.T) {
	products := NewProducts(testDB(t))
	name := "Gadget"
	if _, err := products.Update(99, ProductUpdate{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing product = %v, want ErrNotFound", err)
	}
	if err := products.Delete(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete missing product = %v, want ErrNotFound", err)
	}
}

func TestUpdateProductPartialFields(t *testing.T) {
	db := testDB(t)
	products := NewProducts(db)
	p := seedProduct(t, db, "Widget", 9.99, 5)

	price := 12.50
	updated, err := products.Update(p.ID, ProductUpdate{Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 12.50 {
		t.Errorf("price = %v, want 12.50", updated.Price)
	}
	if updated.Name != "Widget" || updated.Stock != 5 {
		t.Error("unrelated fields were changed")
	}
}

func TestDeleteCategoryUncategorisesProducts(t *testing.T) {
	db := testDB(t)
	products := NewProducts(db)

	cat := models.Category{Name: "Tools"}
	if err := products.CreateCategory(&cat); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	p := &models.Product{Name: "Hammer", Price: 3, Stock: 1, CategoryID: &cat.ID}
	if err := products.Create(p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := products.DeleteCategory(cat.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	got, err := products.ByID(p.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("product still categorised: %v", *got.CategoryID)
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	products := NewProducts(testDB(t))
	if err := products.CreateCategory(&models.Category{Name: "Tools"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	err := products.CreateCategory(&models.Category{Name: "Tools"})
	if err == nil {
		t.Error("expected duplicate category name to fail")
	}
}
