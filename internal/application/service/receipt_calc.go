package service

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sangkips/receipt-api/internal/domain/enum"
	"github.com/sangkips/receipt-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ErrInsufficientPayment is returned when the tendered amount does not cover the total.
var ErrInsufficientPayment = apperror.NewAppError(http.StatusBadRequest, "Insufficient payment amount.")

// ProductInput is one product line as submitted by the client
type ProductInput struct {
	Name     string
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// PaymentInput is the payment as submitted by the client
type PaymentInput struct {
	Type   enum.PaymentType
	Amount decimal.Decimal
}

// CalculatedItem is a product line with its computed total
type CalculatedItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Total    decimal.Decimal
}

// Calculation is the result of pricing a receipt
type Calculation struct {
	Items []CalculatedItem
	Total decimal.Decimal
	Rest  decimal.Decimal
}

// ValidateReceiptInput checks the shape of a receipt request. Prices may be
// zero, quantities must be positive and nothing may be negative.
func ValidateReceiptInput(products []ProductInput, payment PaymentInput) error {
	var fieldErrors []apperror.FieldError

	for i, p := range products {
		if strings.TrimSpace(p.Name) == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("products[%d].name", i),
				Message: "name is required",
			})
		}
		if p.Price.IsNegative() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("products[%d].price", i),
				Message: "price must not be negative",
			})
		}
		if !p.Quantity.IsPositive() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("products[%d].quantity", i),
				Message: "quantity must be greater than zero",
			})
		}
	}

	if !payment.Type.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "payment.type",
			Message: "type must be one of: cash, cashless",
		})
	}
	if payment.Amount.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "payment.amount",
			Message: "amount must not be negative",
		})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CalculateReceipt prices every product line, sums the receipt total and
// computes the change due. It fails with ErrInsufficientPayment when the
// tendered amount is below the total.
func CalculateReceipt(products []ProductInput, payment PaymentInput) (*Calculation, error) {
	calc := &Calculation{
		Items: make([]CalculatedItem, 0, len(products)),
		Total: decimal.Zero,
	}

	for _, p := range products {
		lineTotal := p.Price.Mul(p.Quantity)
		calc.Items = append(calc.Items, CalculatedItem{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
			Total:    lineTotal,
		})
		calc.Total = calc.Total.Add(lineTotal)
	}

	if payment.Amount.LessThan(calc.Total) {
		return nil, ErrInsufficientPayment
	}
	calc.Rest = payment.Amount.Sub(calc.Total)

	return calc, nil
}
