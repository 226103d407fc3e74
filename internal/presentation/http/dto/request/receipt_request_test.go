package request

import (
	"testing"
	"time"

	"github.com/sangkips/receipt-api/internal/domain/enum"
	"github.com/sangkips/receipt-api/pkg/apperror"
	"github.com/sangkips/receipt-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListReceiptsQuery_Defaults(t *testing.T) {
	params, err := (&ListReceiptsQuery{}).ToFilterParams()
	require.NoError(t, err)
	assert.Equal(t, pagination.DefaultLimit, params.Pagination.Limit)
	assert.Equal(t, 0, params.Pagination.Offset)
	assert.Nil(t, params.CreatedFrom)
	assert.Nil(t, params.PaymentType)
}

func TestListReceiptsQuery_AllFilters(t *testing.T) {
	limit, offset := 5, 10
	q := &ListReceiptsQuery{
		CreatedFrom: "2024-01-02",
		CreatedTo:   "2024-01-03T10:20:30+02:00",
		TotalMin:    "1.5",
		TotalMax:    "100",
		PaymentType: "cashless",
		Limit:       &limit,
		Offset:      &offset,
	}

	params, err := q.ToFilterParams()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), *params.CreatedFrom)
	assert.Equal(t, time.Date(2024, 1, 3, 8, 20, 30, 0, time.UTC), *params.CreatedTo)
	assert.Equal(t, "1.5", params.TotalMin.String())
	assert.Equal(t, "100", params.TotalMax.String())
	assert.Equal(t, enum.PaymentTypeCashless, *params.PaymentType)
	assert.Equal(t, pagination.OffsetParams{Limit: 5, Offset: 10}, params.Pagination)
}

func TestListReceiptsQuery_Invalid(t *testing.T) {
	q := &ListReceiptsQuery{
		CreatedFrom: "yesterday",
		TotalMax:    "lots",
		PaymentType: "crypto",
	}

	_, err := q.ToFilterParams()
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	require.Len(t, appErr.Errors, 3)
	assert.Equal(t, "created_from", appErr.Errors[0].Field)
	assert.Equal(t, "total_max", appErr.Errors[1].Field)
	assert.Equal(t, "payment_type", appErr.Errors[2].Field)
}
