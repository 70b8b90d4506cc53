package repository

import (
	"fmt"

	"servicetrack/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Автоматическая миграция всех таблиц
	err = db.AutoMigrate(
		&ds.User{},
		&ds.DealerCompany{},
		&ds.Product{},
		&ds.Package{},
		&ds.RepairRequest{},
		&ds.RequestHistory{},
		&ds.RepairRequestPhoto{},
		&ds.RepairRequestVideo{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}

// NewWithDB оборачивает готовое подключение (используется в тестах)
func NewWithDB(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction выполняет fn в одной транзакции: либо фиксируются все записи,
// либо ни одной. Внутри fn все методы репозитория идут через tx.
func (r *Repository) Transaction(fn func(tx *Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}
