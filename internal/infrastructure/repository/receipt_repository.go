package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-api/internal/domain/entity"
	domainRepo "github.com/sangkips/receipt-api/internal/domain/repository"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

// preloadItems loads receipt items in the order they were entered.
func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Items are inserted by gorm's association save inside this transaction.
		return tx.Omit("User").Create(receipt).Error
	})
}

func (r *receiptRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Scopes(preloadItems).
		Where("user_id = ?", userID).
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetByPublicToken(ctx context.Context, token string) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Scopes(preloadItems).
		First(&receipt, "public_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{}).Where("user_id = ?", userID)

	if params.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *params.CreatedFrom)
	}

	if params.CreatedTo != nil {
		query = query.Where("created_at <= ?", *params.CreatedTo)
	}

	if params.TotalMin != nil {
		query = query.Where("total >= ?", *params.TotalMin)
	}

	if params.TotalMax != nil {
		query = query.Where("total <= ?", *params.TotalMax)
	}

	if params.PaymentType != nil {
		query = query.Where("payment_type = ?", *params.PaymentType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Scopes(preloadItems).
		Order("created_at DESC, id DESC").
		Offset(params.Pagination.Offset).
		Limit(params.Pagination.Limit).
		Find(&receipts).Error

	return receipts, total, err
}
