package request

// PrintReceiptRequest is the optional request body for printing a receipt.
// A zero line width means the configured default.
type PrintReceiptRequest struct {
	LineWidth int `json:"line_width"`
}
