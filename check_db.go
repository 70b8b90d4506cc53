package main

import (
	"fmt"
	"log"

	"servicetrack/internal/app/ds"
	"servicetrack/internal/app/dsn"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	var products []ds.Product
	err = db.Find(&products).Error
	if err != nil {
		log.Fatal("Failed to get products:", err)
	}

	fmt.Println("Products in database:")
	for _, product := range products {
		fmt.Printf("ID: %d, Name: %s, Category: %s, Active: %v\n",
			product.ID, product.DisplayName(), product.Category, product.IsActive)
	}

	var requests []ds.RepairRequest
	err = db.Preload("Product").Order("id").Find(&requests).Error
	if err != nil {
		log.Fatal("Failed to get requests:", err)
	}

	fmt.Println("Repair requests in database:")
	for _, request := range requests {
		fmt.Printf("ID: %d, Serial: %s, Status: %s, Product: %s\n",
			request.ID, request.SerialNumber, request.Status, request.Product.DisplayName())
	}
}
