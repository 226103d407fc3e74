package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-api/internal/domain/entity"
	"github.com/sangkips/receipt-api/internal/domain/repository"
	"github.com/sangkips/receipt-api/internal/infrastructure/cache"
	"github.com/sangkips/receipt-api/pkg/apperror"
	"github.com/sangkips/receipt-api/pkg/pagination"
	"github.com/sangkips/receipt-api/pkg/utils"
	"go.uber.org/zap"
)

// ErrReceiptNotFound is returned for unknown receipts and for receipts owned by someone else.
var ErrReceiptNotFound = apperror.NewNotFoundError("Receipt")

// ReceiptService handles receipt creation, lookup and rendering
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	textCache   cache.ReceiptTextCache
	layout      ReceiptLayout
	log         *zap.Logger
	now         func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	textCache cache.ReceiptTextCache,
	layout ReceiptLayout,
	log *zap.Logger,
) *ReceiptService {
	if textCache == nil {
		textCache = cache.NewNullReceiptCache()
	}
	return &ReceiptService{
		receiptRepo: receiptRepo,
		textCache:   textCache,
		layout:      layout,
		log:         log,
		now:         time.Now,
	}
}

// CreateReceiptInput represents the input for creating a receipt
type CreateReceiptInput struct {
	UserID   uuid.UUID
	Products []ProductInput
	Payment  PaymentInput
}

// Create prices the products, checks the payment and stores the receipt
// with all of its items. Nothing is written when validation or the
// payment check fails.
func (s *ReceiptService) Create(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	if err := ValidateReceiptInput(input.Products, input.Payment); err != nil {
		return nil, err
	}

	calc, err := CalculateReceipt(input.Products, input.Payment)
	if err != nil {
		return nil, err
	}

	token, err := utils.NewPublicToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate public token: %w", err)
	}

	receipt := &entity.Receipt{
		UserID:        input.UserID,
		PaymentType:   input.Payment.Type,
		PaymentAmount: input.Payment.Amount,
		Total:         calc.Total,
		Rest:          calc.Rest,
		PublicToken:   token,
		CreatedAt:     s.now().UTC(),
		Items:         make([]entity.ReceiptItem, 0, len(calc.Items)),
	}
	for i, item := range calc.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Position: i,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Total:    item.Total,
		})
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}

	s.log.Info("receipt created",
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.String("total", receipt.Total.String()),
		zap.Int("items", len(receipt.Items)),
	)

	return receipt, nil
}

// Get returns one of the user's receipts
func (s *ReceiptService) Get(ctx context.Context, userID, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, ErrReceiptNotFound
	}
	return receipt, nil
}

// List returns a page of the user's receipts, newest first
func (s *ReceiptService) List(ctx context.Context, userID uuid.UUID, params *repository.ReceiptFilterParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	if !params.Pagination.Valid() {
		var fieldErrors []apperror.FieldError
		if params.Pagination.Limit < 1 || params.Pagination.Limit > pagination.MaxLimit {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "limit",
				Message: fmt.Sprintf("limit must be between 1 and %d", pagination.MaxLimit),
			})
		}
		if params.Pagination.Offset < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "offset", Message: "offset must not be negative"})
		}
		return nil, apperror.NewValidationError(fieldErrors)
	}

	receipts, total, err := s.receiptRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(receipts, pagination.NewPagination(params.Pagination, total)), nil
}

// RenderText renders one of the user's receipts at the given width
func (s *ReceiptService) RenderText(ctx context.Context, userID, id uuid.UUID, width int) (string, error) {
	receipt, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return RenderReceiptText(receipt, width, s.layout), nil
}

// PublicText renders the receipt behind a public token. Rendered text is
// cached per token and width; cache failures only cost a re-render.
func (s *ReceiptService) PublicText(ctx context.Context, token string, width int) (string, error) {
	if text, ok, err := s.textCache.Get(ctx, token, width); err != nil {
		s.log.Warn("receipt text cache read failed", zap.Error(err))
	} else if ok {
		return text, nil
	}

	receipt, err := s.receiptRepo.GetByPublicToken(ctx, token)
	if err != nil {
		return "", err
	}
	if receipt == nil {
		return "", ErrReceiptNotFound
	}

	text := RenderReceiptText(receipt, width, s.layout)

	if err := s.textCache.Set(ctx, token, width, text); err != nil {
		s.log.Warn("receipt text cache write failed", zap.Error(err))
	}

	return text, nil
}
