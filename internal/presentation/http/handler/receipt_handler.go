package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/receipt-api/internal/application/service"
	"github.com/sangkips/receipt-api/internal/presentation/http/dto/request"
	"github.com/sangkips/receipt-api/internal/presentation/http/dto/response"
	"github.com/sangkips/receipt-api/pkg/apperror"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	publicBaseURL  string
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService, publicBaseURL string) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		publicBaseURL:  publicBaseURL,
	}
}

// Create handles receipt creation
// @Summary Create receipt
// @Tags receipts
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param request body request.CreateReceiptRequest true "Products and payment"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	var req request.CreateReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), &service.CreateReceiptInput{
		UserID:   userID,
		Products: req.ToProducts(),
		Payment:  req.ToPayment(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", response.NewReceiptResponse(receipt, h.publicBaseURL))
}

// List returns the current user's receipts, newest first
// @Summary List receipts
// @Tags receipts
// @Produce json
// @Param created_from query string false "Earliest creation time"
// @Param created_to query string false "Latest creation time"
// @Param total_min query number false "Minimum total"
// @Param total_max query number false "Maximum total"
// @Param payment_type query string false "cash or cashless"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Items to skip" default(0)
// @Success 200 {object} response.APIResponse
// @Router /receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	var query request.ListReceiptsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, []apperror.FieldError{{Field: "query", Message: err.Error()}})
		return
	}

	params, err := query.ToFilterParams()
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.receiptService.List(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully",
		response.NewReceiptListResponse(page, h.publicBaseURL))
}

// Get returns one of the current user's receipts
// @Summary Get receipt
// @Tags receipts
// @Produce json
// @Param id path string true "Receipt ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /receipts/{id} [get]
func (h *ReceiptHandler) Get(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	id, ok := parseUUIDParam(c, "id", service.ErrReceiptNotFound)
	if !ok {
		return
	}

	receipt, err := h.receiptService.Get(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", response.NewReceiptResponse(receipt, h.publicBaseURL))
}
