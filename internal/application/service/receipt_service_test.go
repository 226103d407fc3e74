package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-api/internal/domain/enum"
	"github.com/sangkips/receipt-api/internal/domain/repository"
	"github.com/sangkips/receipt-api/internal/testutil"
	"github.com/sangkips/receipt-api/pkg/apperror"
	"github.com/sangkips/receipt-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapCache struct {
	entries map[string]string
	gets    int
	err     error
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]string)}
}

func (c *mapCache) key(token string, width int) string {
	return fmt.Sprintf("%s/%d", token, width)
}

func (c *mapCache) Get(_ context.Context, token string, width int) (string, bool, error) {
	c.gets++
	if c.err != nil {
		return "", false, c.err
	}
	v, ok := c.entries[c.key(token, width)]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, token string, width int, text string) error {
	if c.err != nil {
		return c.err
	}
	c.entries[c.key(token, width)] = text
	return nil
}

func newTestReceiptService(t *testing.T) (*ReceiptService, *testutil.ReceiptStore, *mapCache) {
	t.Helper()
	store := testutil.NewReceiptStore()
	c := newMapCache()
	return NewReceiptService(store, c, DefaultReceiptLayout(), zap.NewNop()), store, c
}

func appleBanana(userID uuid.UUID) *CreateReceiptInput {
	return &CreateReceiptInput{
		UserID: userID,
		Products: []ProductInput{
			{Name: "Apple", Price: dec("2.5"), Quantity: dec("3")},
			{Name: "Banana", Price: dec("1.0"), Quantity: dec("5")},
		},
		Payment: PaymentInput{Type: enum.PaymentTypeCash, Amount: dec("20.0")},
	}
}

func TestReceiptService_Create(t *testing.T) {
	svc, store, _ := newTestReceiptService(t)
	userID := uuid.New()

	r, err := svc.Create(context.Background(), appleBanana(userID))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, userID, r.UserID)
	assert.True(t, r.Total.Equal(dec("12.5")))
	assert.True(t, r.Rest.Equal(dec("7.5")))
	assert.Len(t, r.PublicToken, 22)
	assert.False(t, r.CreatedAt.IsZero())
	require.Len(t, r.Items, 2)
	assert.Equal(t, "Apple", r.Items[0].Name)
	assert.Equal(t, 0, r.Items[0].Position)
	assert.Equal(t, "Banana", r.Items[1].Name)
	assert.Equal(t, 1, r.Items[1].Position)
	assert.Equal(t, 1, store.Count())
}

func TestReceiptService_Create_InsufficientPaymentWritesNothing(t *testing.T) {
	svc, store, _ := newTestReceiptService(t)

	input := &CreateReceiptInput{
		UserID:   uuid.New(),
		Products: []ProductInput{{Name: "Thing", Price: dec("10.0"), Quantity: dec("1")}},
		Payment:  PaymentInput{Type: enum.PaymentTypeCash, Amount: dec("5.0")},
	}

	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, ErrInsufficientPayment)
	assert.Equal(t, 0, store.Count())
}

func TestReceiptService_Create_ValidationWritesNothing(t *testing.T) {
	svc, store, _ := newTestReceiptService(t)

	input := appleBanana(uuid.New())
	input.Products[0].Quantity = dec("0")

	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
	assert.Equal(t, 0, store.Count())
}

func TestReceiptService_Create_StoreFailure(t *testing.T) {
	svc, store, _ := newTestReceiptService(t)
	store.Err = errors.New("connection refused")

	_, err := svc.Create(context.Background(), appleBanana(uuid.New()))
	require.Error(t, err)
	assert.Equal(t, 500, apperror.GetAppError(err).Code)
}

func TestReceiptService_Get(t *testing.T) {
	svc, _, _ := newTestReceiptService(t)
	owner := uuid.New()

	created, err := svc.Create(context.Background(), appleBanana(owner))
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(context.Background(), uuid.New(), created.ID)
	assert.ErrorIs(t, err, ErrReceiptNotFound)

	_, err = svc.Get(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, ErrReceiptNotFound)
	assert.Equal(t, "Receipt not found", err.Error())
}

func TestReceiptService_List(t *testing.T) {
	svc, _, _ := newTestReceiptService(t)
	owner := uuid.New()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		input := appleBanana(owner)
		if i == 2 {
			input.Payment.Type = enum.PaymentTypeCashless
		}
		_, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), appleBanana(uuid.New()))
	require.NoError(t, err)

	params := &repository.ReceiptFilterParams{Pagination: pagination.OffsetParams{Limit: 2}}
	page, err := svc.List(context.Background(), owner, params)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.True(t, page.Pagination.HasNext)
	assert.True(t, page.Items[0].CreatedAt.After(page.Items[1].CreatedAt))

	cashless := enum.PaymentTypeCashless
	params = &repository.ReceiptFilterParams{
		Pagination:  pagination.DefaultOffsetParams(),
		PaymentType: &cashless,
	}
	page, err = svc.List(context.Background(), owner, params)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, enum.PaymentTypeCashless, page.Items[0].PaymentType)

	_, err = svc.List(context.Background(), owner, &repository.ReceiptFilterParams{
		Pagination: pagination.OffsetParams{Limit: 0, Offset: -1},
	})
	require.Error(t, err)
	assert.Len(t, apperror.GetAppError(err).Errors, 2)
}

func TestReceiptService_PublicText(t *testing.T) {
	svc, _, c := newTestReceiptService(t)

	created, err := svc.Create(context.Background(), appleBanana(uuid.New()))
	require.NoError(t, err)

	text, err := svc.PublicText(context.Background(), created.PublicToken, 40)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "          ФОП Джонсонюк Борис"))
	assert.Len(t, c.entries, 1)

	again, err := svc.PublicText(context.Background(), created.PublicToken, 40)
	require.NoError(t, err)
	assert.Equal(t, text, again)

	_, err = svc.PublicText(context.Background(), "missing-token", 40)
	assert.ErrorIs(t, err, ErrReceiptNotFound)
}

func TestReceiptService_PublicText_CacheFailureFallsThrough(t *testing.T) {
	svc, _, c := newTestReceiptService(t)

	created, err := svc.Create(context.Background(), appleBanana(uuid.New()))
	require.NoError(t, err)

	c.err = errors.New("redis down")
	text, err := svc.PublicText(context.Background(), created.PublicToken, 40)
	require.NoError(t, err)
	assert.Contains(t, text, "Apple")
}

func TestReceiptService_PublicText_ServesFromCache(t *testing.T) {
	svc, store, c := newTestReceiptService(t)

	created, err := svc.Create(context.Background(), appleBanana(uuid.New()))
	require.NoError(t, err)
	_, err = svc.PublicText(context.Background(), created.PublicToken, 40)
	require.NoError(t, err)

	store.Err = errors.New("database unavailable")
	text, err := svc.PublicText(context.Background(), created.PublicToken, 40)
	require.NoError(t, err)
	assert.Contains(t, text, "Banana")
	assert.Equal(t, 2, c.gets)
}
