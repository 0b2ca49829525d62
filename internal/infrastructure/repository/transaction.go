package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	domainRepo "github.com/sangkips/inventra-api/internal/domain/repository"
)

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over db
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}

type sequencer struct {
	db *gorm.DB
}

// NewSequencer creates a document sequencer backed by the document_sequences table
func NewSequencer(db *gorm.DB) domainRepo.Sequencer {
	return &sequencer{db: db}
}

// Next bumps the (type, year) counter. The UPDATE takes the row lock, so
// concurrent callers queue behind the first transaction and each read back
// their own value.
func (s *sequencer) Next(ctx context.Context, docType enum.DocumentType, year int) (int64, error) {
	db := conn(ctx, s.db)

	seed := entity.DocumentSequence{DocumentType: docType, Year: year}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, err
	}

	if err := db.Model(&entity.DocumentSequence{}).
		Where("document_type = ? AND year = ?", docType, year).
		UpdateColumn("last_value", gorm.Expr("last_value + ?", 1)).Error; err != nil {
		return 0, err
	}

	var seq entity.DocumentSequence
	if err := db.Where("document_type = ? AND year = ?", docType, year).First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.LastValue, nil
}
