package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt is a finalized point-of-sale transaction. It is written once,
// together with its items, and never updated afterwards.
type Receipt struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	PaymentType   enum.PaymentType `gorm:"size:20;not null;index"`
	PaymentAmount decimal.Decimal  `gorm:"type:numeric;not null"`
	Total         decimal.Decimal  `gorm:"type:numeric;not null;index"`
	Rest          decimal.Decimal  `gorm:"type:numeric;not null"` // change due
	PublicToken   string           `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt     time.Time        `gorm:"index"`

	// Relationships
	User  User          `gorm:"foreignKey:UserID"`
	Items []ReceiptItem `gorm:"foreignKey:ReceiptID"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptItem is one line of a receipt. Position keeps the input order.
type ReceiptItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceiptID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	Name      string          `gorm:"size:255;not null"`
	Price     decimal.Decimal `gorm:"type:numeric;not null"`
	Quantity  decimal.Decimal `gorm:"type:numeric;not null"`
	Total     decimal.Decimal `gorm:"type:numeric;not null"`
}

// BeforeCreate generates a UUID before creating a new receipt item
func (i *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptItem model
func (ReceiptItem) TableName() string {
	return "receipt_items"
}
