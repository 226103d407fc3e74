package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-api/internal/domain/entity"
	"github.com/sangkips/receipt-api/internal/domain/enum"
	"github.com/sangkips/receipt-api/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrinterService sends rendered receipts to a thermal printer.
type PrinterService struct {
	printer        printer.Printer
	receiptService *ReceiptService
	printerType    string
	log            *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	receiptService *ReceiptService,
	printerType string,
	log *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printer:        p,
		receiptService: receiptService,
		printerType:    printerType,
		log:            log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printerType,
	}
}

// PrintReceipt renders one of the user's receipts and sends it to the printer.
// When the receipt renders but printing fails, the text is returned together
// with the error so the caller can still show it.
func (s *PrinterService) PrintReceipt(ctx context.Context, userID, receiptID uuid.UUID, width int) (string, error) {
	text, err := s.receiptService.RenderText(ctx, userID, receiptID, width)
	if err != nil {
		return "", err
	}

	if err := s.printer.Print(ctx, printer.EncodeText(text)); err != nil {
		s.log.Warn("printer error", zap.String("receipt_id", receiptID.String()), zap.Error(err))
		return text, fmt.Errorf("failed to print receipt: %w", err)
	}

	return text, nil
}

// TestPrint sends a sample receipt to the printer and returns its text.
func (s *PrinterService) TestPrint(ctx context.Context, width int) (string, error) {
	one := decimal.NewFromInt(1)
	ten := decimal.NewFromInt(10)
	sample := &entity.Receipt{
		PaymentType:   enum.PaymentTypeCash,
		PaymentAmount: decimal.NewFromInt(20),
		Total:         ten,
		Rest:          ten,
		CreatedAt:     time.Now().UTC(),
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Price: ten, Quantity: one, Total: ten},
		},
	}

	text := RenderReceiptText(sample, width, s.receiptService.layout)
	if err := s.printer.Print(ctx, printer.EncodeText(text)); err != nil {
		return text, fmt.Errorf("test print failed: %w", err)
	}
	return text, nil
}
