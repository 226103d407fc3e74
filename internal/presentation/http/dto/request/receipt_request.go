package request

import (
	"time"

	"github.com/sangkips/receipt-api/internal/application/service"
	"github.com/sangkips/receipt-api/internal/domain/enum"
	"github.com/sangkips/receipt-api/internal/domain/repository"
	"github.com/sangkips/receipt-api/pkg/apperror"
	"github.com/sangkips/receipt-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductRequest is one product line of a new receipt.
// Price and quantity accept JSON numbers or numeric strings.
type ProductRequest struct {
	Name     string           `json:"name" binding:"required,max=255"`
	Price    *decimal.Decimal `json:"price" binding:"required"`
	Quantity *decimal.Decimal `json:"quantity" binding:"required"`
}

// PaymentRequest is the payment of a new receipt
type PaymentRequest struct {
	Type   string           `json:"type" binding:"required"`
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

// CreateReceiptRequest represents a create receipt request
type CreateReceiptRequest struct {
	Products []ProductRequest `json:"products" binding:"required,dive"`
	Payment  PaymentRequest   `json:"payment"`
}

// ToProducts converts the request into calculator input
func (r *CreateReceiptRequest) ToProducts() []service.ProductInput {
	products := make([]service.ProductInput, 0, len(r.Products))
	for _, p := range r.Products {
		products = append(products, service.ProductInput{
			Name:     p.Name,
			Price:    *p.Price,
			Quantity: *p.Quantity,
		})
	}
	return products
}

// ToPayment converts the request into calculator input
func (r *CreateReceiptRequest) ToPayment() service.PaymentInput {
	return service.PaymentInput{
		Type:   enum.PaymentType(r.Payment.Type),
		Amount: *r.Payment.Amount,
	}
}

// ListReceiptsQuery holds the raw receipt list filters
type ListReceiptsQuery struct {
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
	TotalMin    string `form:"total_min"`
	TotalMax    string `form:"total_max"`
	PaymentType string `form:"payment_type"`
	Limit       *int   `form:"limit"`
	Offset      *int   `form:"offset"`
}

var queryTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ToFilterParams validates the query and converts it to repository filters.
// Timestamps without a zone are taken as UTC.
func (q *ListReceiptsQuery) ToFilterParams() (*repository.ReceiptFilterParams, error) {
	params := &repository.ReceiptFilterParams{Pagination: pagination.DefaultOffsetParams()}
	var fieldErrors []apperror.FieldError

	if q.Limit != nil {
		params.Pagination.Limit = *q.Limit
	}
	if q.Offset != nil {
		params.Pagination.Offset = *q.Offset
	}

	if q.CreatedFrom != "" {
		t, ok := parseQueryTime(q.CreatedFrom)
		if !ok {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "created_from", Message: "invalid datetime"})
		}
		params.CreatedFrom = &t
	}
	if q.CreatedTo != "" {
		t, ok := parseQueryTime(q.CreatedTo)
		if !ok {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "created_to", Message: "invalid datetime"})
		}
		params.CreatedTo = &t
	}
	if q.TotalMin != "" {
		d, err := decimal.NewFromString(q.TotalMin)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "total_min", Message: "invalid number"})
		}
		params.TotalMin = &d
	}
	if q.TotalMax != "" {
		d, err := decimal.NewFromString(q.TotalMax)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "total_max", Message: "invalid number"})
		}
		params.TotalMax = &d
	}
	if q.PaymentType != "" {
		pt, err := enum.ParsePaymentType(q.PaymentType)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_type", Message: err.Error()})
		}
		params.PaymentType = &pt
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	return params, nil
}

func parseQueryTime(s string) (time.Time, bool) {
	for _, layout := range queryTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
