package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentType(t *testing.T) {
	p, err := ParsePaymentType("cash")
	require.NoError(t, err)
	assert.Equal(t, PaymentTypeCash, p)

	p, err = ParsePaymentType("cashless")
	require.NoError(t, err)
	assert.Equal(t, PaymentTypeCashless, p)

	_, err = ParsePaymentType("crypto")
	assert.Error(t, err)

	_, err = ParsePaymentType("")
	assert.Error(t, err)
}

func TestPaymentType_Scan(t *testing.T) {
	var p PaymentType
	require.NoError(t, p.Scan([]byte("cashless")))
	assert.Equal(t, PaymentTypeCashless, p)

	require.NoError(t, p.Scan("cash"))
	assert.Equal(t, PaymentTypeCash, p)

	assert.Error(t, p.Scan(42))

	v, err := PaymentTypeCash.Value()
	require.NoError(t, err)
	assert.Equal(t, "cash", v)
}
