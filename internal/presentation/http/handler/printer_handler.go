package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/receipt-api/internal/application/service"
	"github.com/sangkips/receipt-api/internal/presentation/http/dto/request"
	"github.com/sangkips/receipt-api/internal/presentation/http/dto/response"
	"github.com/sangkips/receipt-api/pkg/apperror"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
	widths         service.WidthBounds
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService, widths service.WidthBounds) *PrinterHandler {
	return &PrinterHandler{printerService: printerService, widths: widths}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	text, err := h.printerService.TestPrint(c.Request.Context(), h.widths.Default)
	if err != nil {
		// Return the text anyway (useful when the printer is unreachable)
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"text":    text,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"text": text,
	})
}

// PrintReceipt prints one of the current user's receipts.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	id, ok := parseUUIDParam(c, "id", service.ErrReceiptNotFound)
	if !ok {
		return
	}

	var req request.PrintReceiptRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	width, err := h.widths.Check(req.LineWidth)
	if err != nil {
		response.Error(c, err)
		return
	}

	text, err := h.printerService.PrintReceipt(c.Request.Context(), userID, id, width)
	if err != nil {
		// If the receipt rendered but printing failed, return it with a warning
		if text != "" {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"text":    text,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"text": text,
	})
}
