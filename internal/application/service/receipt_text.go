package service

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/receipt-api/internal/config"
	"github.com/sangkips/receipt-api/internal/domain/entity"
	"github.com/sangkips/receipt-api/internal/domain/enum"
	"github.com/sangkips/receipt-api/pkg/apperror"
	"github.com/sangkips/receipt-api/pkg/printer"
	"github.com/shopspring/decimal"
)

// Item names longer than this are cut and suffixed with "...".
const maxItemNameLen = 14

const timestampLayout = "02.01.2006 15:04"

// ErrInvalidWidth is returned for a requested line width outside the allowed range.
var ErrInvalidWidth = &apperror.AppError{
	Code:    http.StatusUnprocessableEntity,
	Message: "Invalid line width",
}

// ReceiptLayout holds the fixed texts printed on every receipt
type ReceiptLayout struct {
	ShopName      string
	TotalLabel    string
	CashLabel     string
	CashlessLabel string
	ChangeLabel   string
	ThankYou      string
	Location      *time.Location
}

// DefaultReceiptLayout returns the stock layout in UTC
func DefaultReceiptLayout() ReceiptLayout {
	return ReceiptLayout{
		ShopName:      "ФОП Джонсонюк Борис",
		TotalLabel:    "СУМА",
		CashLabel:     "Готівка",
		CashlessLabel: "Картка",
		ChangeLabel:   "Решта",
		ThankYou:      "Дякуємо за покупку!",
		Location:      time.UTC,
	}
}

// NewReceiptLayout builds the layout from configuration
func NewReceiptLayout(cfg *config.ReceiptConfig) (ReceiptLayout, error) {
	loc := time.UTC
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return ReceiptLayout{}, fmt.Errorf("invalid receipt timezone %q: %w", cfg.Timezone, err)
		}
		loc = l
	}
	return ReceiptLayout{
		ShopName:      cfg.ShopName,
		TotalLabel:    cfg.TotalLabel,
		CashLabel:     cfg.CashLabel,
		CashlessLabel: cfg.CashlessLabel,
		ChangeLabel:   cfg.ChangeLabel,
		ThankYou:      cfg.ThankYou,
		Location:      loc,
	}, nil
}

func (l ReceiptLayout) tenderedLabel(t enum.PaymentType) string {
	if t == enum.PaymentTypeCash {
		return l.CashLabel
	}
	return l.CashlessLabel
}

// WidthBounds is the accepted line width range and the default used when
// none is requested.
type WidthBounds struct {
	Default int
	Min     int
	Max     int
}

// NewWidthBounds reads the width range from configuration
func NewWidthBounds(cfg *config.ReceiptConfig) WidthBounds {
	return WidthBounds{Default: cfg.DefaultWidth, Min: cfg.MinWidth, Max: cfg.MaxWidth}
}

// Resolve parses a raw width parameter. An empty value yields the default.
func (b WidthBounds) Resolve(raw string) (int, error) {
	if raw == "" {
		return b.Default, nil
	}
	width, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidWidth
	}
	if width < b.Min || width > b.Max {
		return 0, ErrInvalidWidth
	}
	return width, nil
}

// Check validates a width from a request body, where zero means the field
// was left out and yields the default.
func (b WidthBounds) Check(width int) (int, error) {
	if width == 0 {
		return b.Default, nil
	}
	if width < b.Min || width > b.Max {
		return 0, ErrInvalidWidth
	}
	return width, nil
}

// RenderReceiptText lays out a receipt as fixed-width plain text. If any
// line comes out wider than width, the whole receipt is laid out once more
// at the width of that line, so separators and centering match the widest
// content.
func RenderReceiptText(r *entity.Receipt, width int, layout ReceiptLayout) string {
	doc := layoutReceipt(r, width, layout)
	if longest := doc.MaxLineWidth(); longest > width {
		doc = layoutReceipt(r, longest, layout)
	}
	return doc.String()
}

func layoutReceipt(r *entity.Receipt, width int, layout ReceiptLayout) *printer.Document {
	doc := printer.NewDocument(width)

	doc.Center(layout.ShopName).
		Separator('=')

	for _, item := range r.Items {
		doc.Text(item.Quantity.StringFixed(2) + " x " + formatMoney(item.Price))
		keyValue(doc, strings.TrimSpace(item.Name), formatMoney(item.Total))
		doc.Separator('-')
	}

	doc.Separator('=')
	keyValue(doc, layout.TotalLabel, formatMoney(r.Total))
	keyValue(doc, layout.tenderedLabel(r.PaymentType), formatMoney(r.PaymentAmount))
	keyValue(doc, layout.ChangeLabel, formatMoney(r.Rest))
	doc.Separator('=')

	loc := layout.Location
	if loc == nil {
		loc = time.UTC
	}
	doc.Center(r.CreatedAt.In(loc).Format(timestampLayout)).
		Center(layout.ThankYou)

	return doc
}

func keyValue(doc *printer.Document, key, value string) {
	doc.KeyValue(printer.Truncate(key, maxItemNameLen), value)
}

// formatMoney renders d with two decimals and the integer part grouped in
// threes with spaces, e.g. "1 234 567.50".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, frac = s[:dot], s[dot:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}

	return sign + b.String() + frac
}
