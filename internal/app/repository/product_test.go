package repository

import (
	"errors"
	"testing"
	"time"

	"servicetrack/internal/app/ds"
	"servicetrack/internal/app/testutil"
)

func TestDeleteProductReferencedByRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewWithDB(db)

	product := testutil.SeedProduct(t, db, "SUB-12")
	request := &ds.RepairRequest{
		Status:             ds.StatusAcceptedByDealer,
		SerialNumber:       "REF-001",
		ProductID:          product.ID,
		PurchaseDate:       time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		WarrantyStatus:     ds.WarrantyRepair,
		ProblemDescription: "тест",
		CreatedAt:          time.Now(),
	}
	if err := repo.CreateRequest(request); err != nil {
		t.Fatal(err)
	}

	// товар с заявками защищен от удаления
	err := repo.DeleteProduct(product.ID)
	if !errors.Is(err, ErrProductReferenced) {
		t.Fatalf("expected ErrProductReferenced, got %v", err)
	}

	reloaded, err := repo.GetProductByID(product.ID)
	if err != nil {
		t.Fatalf("referenced product must stay active: %v", err)
	}
	if !reloaded.IsActive {
		t.Error("referenced product must stay active")
	}

	// товар без заявок удаляется логически
	free := testutil.SeedProduct(t, db, "FREE-10")
	if err := repo.DeleteProduct(free.ID); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}
	if _, err := repo.GetProductByID(free.ID); !IsNotFound(err) {
		t.Errorf("deleted product must not be visible, got %v", err)
	}

	// повторное удаление — запись не найдена
	if err := repo.DeleteProduct(free.ID); !IsNotFound(err) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}

func TestUpsertProductByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewWithDB(db)

	brand := "Alphard"
	product := &ds.Product{Name: "M15", Brand: &brand, Category: ds.CategorySubwoofer, IsActive: true, CreatedAt: time.Now()}
	created, err := repo.UpsertProductByName(product)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Error("first upsert must create")
	}

	newBrand := "Deaf Bonce"
	updated := &ds.Product{Name: "M15", Brand: &newBrand, Category: ds.CategorySubwoofer, CreatedAt: time.Now()}
	created, err = repo.UpsertProductByName(updated)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Error("second upsert must update existing")
	}
	if updated.ID != product.ID {
		t.Errorf("upsert must keep ID %d, got %d", product.ID, updated.ID)
	}

	reloaded, err := repo.GetProductByID(product.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Brand == nil || *reloaded.Brand != newBrand {
		t.Errorf("brand not updated: %v", reloaded.Brand)
	}
}
