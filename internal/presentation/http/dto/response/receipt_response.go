package response

import (
	"encoding/json"
	"time"

	"github.com/sangkips/receipt-api/internal/domain/entity"
	"github.com/sangkips/receipt-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductResponse is one product line of a receipt
type ProductResponse struct {
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Quantity json.Number `json:"quantity"`
	Total    json.Number `json:"total"`
}

// PaymentResponse is the payment of a receipt
type PaymentResponse struct {
	Type   string      `json:"type"`
	Amount json.Number `json:"amount"`
}

// ReceiptResponse is a receipt as returned to its owner
type ReceiptResponse struct {
	ID          string            `json:"id"`
	Products    []ProductResponse `json:"products"`
	Payment     PaymentResponse   `json:"payment"`
	Total       json.Number       `json:"total"`
	Rest        json.Number       `json:"rest"`
	CreatedAt   time.Time         `json:"created_at"`
	PublicToken string            `json:"public_token"`
	PublicURL   string            `json:"public_url"`
}

// number keeps the exact decimal digits in JSON output
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// PublicReceiptPath is the unauthenticated path of a receipt's text view
func PublicReceiptPath(token string) string {
	return "/public/receipt/" + token
}

// NewReceiptResponse converts a receipt entity. baseURL prefixes the public link.
func NewReceiptResponse(r *entity.Receipt, baseURL string) ReceiptResponse {
	products := make([]ProductResponse, 0, len(r.Items))
	for _, item := range r.Items {
		products = append(products, ProductResponse{
			Name:     item.Name,
			Price:    number(item.Price),
			Quantity: number(item.Quantity),
			Total:    number(item.Total),
		})
	}

	return ReceiptResponse{
		ID:       r.ID.String(),
		Products: products,
		Payment: PaymentResponse{
			Type:   r.PaymentType.String(),
			Amount: number(r.PaymentAmount),
		},
		Total:       number(r.Total),
		Rest:        number(r.Rest),
		CreatedAt:   r.CreatedAt.UTC(),
		PublicToken: r.PublicToken,
		PublicURL:   baseURL + PublicReceiptPath(r.PublicToken),
	}
}

// NewReceiptListResponse converts a page of receipts
func NewReceiptListResponse(page *pagination.PaginatedResult[entity.Receipt], baseURL string) *pagination.PaginatedResult[ReceiptResponse] {
	items := make([]ReceiptResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewReceiptResponse(&page.Items[i], baseURL))
	}
	return pagination.NewPaginatedResult(items, page.Pagination)
}
