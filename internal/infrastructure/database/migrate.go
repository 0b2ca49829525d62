package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/config"
	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// Models lists every persisted entity in migration order
func Models() []interface{} {
	return []interface{}{
		// Users
		&entity.User{},

		// Catalog
		&entity.Category{},
		&entity.Brand{},
		&entity.Product{},

		// Warehousing
		&entity.Warehouse{},
		&entity.StockItem{},
		&entity.StockAdjustment{},
		&entity.Transfer{},

		// Production
		&entity.BOM{},
		&entity.BOMComponent{},
		&entity.ManufactureOrder{},
		&entity.ComponentUsage{},

		// Counterparties
		&entity.Customer{},
		&entity.CustomerPayment{},
		&entity.LedgerEntry{},
		&entity.Supplier{},
		&entity.SupplierPayment{},

		// Transactions
		&entity.Purchase{},
		&entity.PurchaseDetail{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.SaleReturn{},
		&entity.ReturnItem{},

		// System
		&entity.DocumentSequence{},
		&entity.IdempotencyKey{},
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the admin and user accounts when they are missing.
// Existing accounts are left alone so changed passwords survive restarts.
func SeedDefaultData(ctx context.Context, db *gorm.DB, seed config.SeedConfig, log *logrus.Logger) error {
	log.Info("Seeding default data...")

	accounts := []struct {
		username string
		name     string
		password string
		role     enum.UserRole
	}{
		{"admin", "Administrator", seed.AdminPassword, enum.UserRoleAdmin},
		{"user", "Default User", seed.UserPassword, enum.UserRoleUser},
	}

	for _, a := range accounts {
		var count int64
		if err := db.WithContext(ctx).Model(&entity.User{}).Unscoped().
			Where("username = ?", a.username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		user := entity.User{
			Name:     a.name,
			Username: a.username,
			Password: string(hashed),
			Role:     a.role,
			IsActive: true,
		}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create %s user: %w", a.username, err)
		}
		log.WithField("username", a.username).Info("Created default user")
	}

	log.Info("Default data seeded successfully")
	return nil
}
