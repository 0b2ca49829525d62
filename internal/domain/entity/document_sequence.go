package entity

import "github.com/sangkips/inventra-api/internal/domain/enum"

// DocumentSequence is the last number issued for a document type in a year
type DocumentSequence struct {
	DocumentType enum.DocumentType `gorm:"size:10;primaryKey"`
	Year         int               `gorm:"primaryKey;autoIncrement:false"`
	LastValue    int64             `gorm:"not null;default:0"`
}

func (DocumentSequence) TableName() string {
	return "document_sequences"
}
