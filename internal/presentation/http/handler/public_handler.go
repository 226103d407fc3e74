package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/receipt-api/internal/application/service"
	"github.com/sangkips/receipt-api/internal/presentation/http/dto/response"
)

// PublicHandler serves unauthenticated receipt views
type PublicHandler struct {
	receiptService *service.ReceiptService
	widths         service.WidthBounds
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(receiptService *service.ReceiptService, widths service.WidthBounds) *PublicHandler {
	return &PublicHandler{
		receiptService: receiptService,
		widths:         widths,
	}
}

// ViewReceipt renders a receipt as plain text by its public token
// @Summary Public receipt text
// @Tags public
// @Produce plain
// @Param token path string true "Public token"
// @Param line_width query int false "Line width" default(40)
// @Success 200 {string} string
// @Failure 404 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /public/receipt/{token} [get]
func (h *PublicHandler) ViewReceipt(c *gin.Context) {
	width, err := h.widths.Resolve(c.Query("line_width"))
	if err != nil {
		response.Error(c, err)
		return
	}

	text, err := h.receiptService.PublicText(c.Request.Context(), c.Param("token"), width)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
