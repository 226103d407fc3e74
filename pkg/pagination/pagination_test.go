package pagination

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetParams_Valid(t *testing.T) {
	assert.True(t, DefaultOffsetParams().Valid())
	assert.True(t, OffsetParams{Limit: 1, Offset: 0}.Valid())
	assert.True(t, OffsetParams{Limit: MaxLimit, Offset: 500}.Valid())
	assert.False(t, OffsetParams{Limit: 0}.Valid())
	assert.False(t, OffsetParams{Limit: MaxLimit + 1}.Valid())
	assert.False(t, OffsetParams{Limit: 10, Offset: -1}.Valid())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(OffsetParams{Limit: 2, Offset: 1}, 4)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = NewPagination(OffsetParams{Limit: 2, Offset: 2}, 4)
	assert.False(t, p.HasNext)

	p = NewPagination(OffsetParams{Limit: 10}, 0)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestNewPaginatedResult_EmptyItemsEncodeAsArray(t *testing.T) {
	res := NewPaginatedResult[int](nil, NewPagination(DefaultOffsetParams(), 0))
	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"pagination":{"limit":10,"offset":0,"total":0,"has_next":false,"has_prev":false}}`, string(b))
}
