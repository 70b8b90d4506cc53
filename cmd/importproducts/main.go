package main

import (
	"encoding/json"
	"log"
	"os"

	"servicetrack/internal/app/ds"
	"servicetrack/internal/app/dsn"
	"servicetrack/internal/app/repository"

	"github.com/joho/godotenv"
)

// Формат выгрузки каталога с сайта производителя
type productRecord struct {
	Model          string            `json:"model"`
	ProductID      string            `json:"product_id"`
	URL            string            `json:"url"`
	Specifications map[string]string `json:"specifications"`
}

// Импорт каталога товаров из JSON-файла:
//
//	go run ./cmd/importproducts products.json
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: importproducts <json_file>")
	}
	jsonFile := os.Args[1]

	_ = godotenv.Load()

	data, err := os.ReadFile(jsonFile)
	if err != nil {
		log.Fatalf("Failed to read file %s: %v", jsonFile, err)
	}

	var records []productRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("Failed to parse JSON: %v", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	createdCount := 0
	updatedCount := 0

	for _, record := range records {
		specs := record.Specifications
		product := &ds.Product{
			Name:        record.Model,
			Brand:       optional(specs["Бренд"]),
			Series:      optional(specs["Серия"]),
			Category:    ds.CategorySubwoofer,
			Size:        optional(specs["Размер"]),
			PowerRMS:    optional(specs["Мощность RMS"]),
			PowerMax:    optional(specs["Мощность MAX"]),
			ExternalID:  optional(record.ProductID),
			ExternalURL: optional(record.URL),
			IsActive:    true,
		}

		created, err := repo.UpsertProductByName(product)
		if err != nil {
			log.Fatalf("Failed to import %s: %v", record.Model, err)
		}
		if created {
			createdCount++
			log.Printf("Created: %s", product.Name)
		} else {
			updatedCount++
			log.Printf("Updated: %s", product.Name)
		}
	}

	log.Printf("Import completed! Created: %d, Updated: %d", createdCount, updatedCount)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
