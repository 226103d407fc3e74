package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-api/internal/domain/entity"
	"github.com/sangkips/receipt-api/internal/domain/enum"
	"github.com/sangkips/receipt-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ReceiptRepository defines the interface for receipt data operations.
// Lookups return (nil, nil) when no receipt matches; returned receipts
// always carry their items ordered by position.
type ReceiptRepository interface {
	// Create stores the receipt and all of its items atomically.
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entity.Receipt, error)
	GetByPublicToken(ctx context.Context, token string) (*entity.Receipt, error)
	List(ctx context.Context, userID uuid.UUID, params *ReceiptFilterParams) ([]entity.Receipt, int64, error)
}

// ReceiptFilterParams contains filtering parameters for receipt queries.
// Nil fields do not filter.
type ReceiptFilterParams struct {
	Pagination  pagination.OffsetParams
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	TotalMin    *decimal.Decimal
	TotalMax    *decimal.Decimal
	PaymentType *enum.PaymentType
}

// Matches reports whether r satisfies every filter. Pagination is ignored.
func (p *ReceiptFilterParams) Matches(r *entity.Receipt) bool {
	if p.CreatedFrom != nil && r.CreatedAt.Before(*p.CreatedFrom) {
		return false
	}
	if p.CreatedTo != nil && r.CreatedAt.After(*p.CreatedTo) {
		return false
	}
	if p.TotalMin != nil && r.Total.LessThan(*p.TotalMin) {
		return false
	}
	if p.TotalMax != nil && r.Total.GreaterThan(*p.TotalMax) {
		return false
	}
	if p.PaymentType != nil && r.PaymentType != *p.PaymentType {
		return false
	}
	return true
}
