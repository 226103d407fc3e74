package enum

import (
	"database/sql/driver"
	"fmt"
)

// PaymentType is how a receipt was paid
type PaymentType string

const (
	PaymentTypeCash     PaymentType = "cash"
	PaymentTypeCashless PaymentType = "cashless"
)

// ParsePaymentType converts s into a PaymentType, rejecting unknown values
func ParsePaymentType(s string) (PaymentType, error) {
	p := PaymentType(s)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown payment type %q (use cash or cashless)", s)
	}
	return p, nil
}

// IsValid reports whether p is one of the known payment types
func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypeCash, PaymentTypeCashless:
		return true
	}
	return false
}

func (p PaymentType) String() string {
	return string(p)
}

func (p PaymentType) Value() (driver.Value, error) {
	return string(p), nil
}

func (p *PaymentType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*p = PaymentType(v)
	case []byte:
		*p = PaymentType(v)
	case nil:
		*p = ""
	default:
		return fmt.Errorf("cannot scan %T into PaymentType", value)
	}
	return nil
}
