// Package testutil provides in-memory repositories for service and HTTP tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-api/internal/domain/entity"
	"github.com/sangkips/receipt-api/internal/domain/repository"
	"github.com/sangkips/receipt-api/pkg/apperror"
)

// UserStore is an in-memory repository.UserRepository
type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]entity.User
}

var _ repository.UserRepository = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]entity.User)}
}

func (s *UserStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return apperror.NewConflictError("duplicate username")
		}
	}
	_ = user.BeforeCreate(nil)
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// Delete removes a user, for tests that need a token whose owner is gone
func (s *UserStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// ReceiptStore is an in-memory repository.ReceiptRepository
type ReceiptStore struct {
	mu       sync.RWMutex
	receipts []entity.Receipt
	// Err, when set, is returned by every call
	Err error
}

var _ repository.ReceiptRepository = (*ReceiptStore)(nil)

func NewReceiptStore() *ReceiptStore {
	return &ReceiptStore{}
}

func (s *ReceiptStore) Create(_ context.Context, receipt *entity.Receipt) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = receipt.BeforeCreate(nil)
	for i := range receipt.Items {
		_ = receipt.Items[i].BeforeCreate(nil)
		receipt.Items[i].ReceiptID = receipt.ID
	}
	s.receipts = append(s.receipts, cloneReceipt(receipt))
	return nil
}

func (s *ReceiptStore) GetByID(_ context.Context, userID, id uuid.UUID) (*entity.Receipt, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.receipts {
		if s.receipts[i].ID == id && s.receipts[i].UserID == userID {
			r := cloneReceipt(&s.receipts[i])
			return &r, nil
		}
	}
	return nil, nil
}

func (s *ReceiptStore) GetByPublicToken(_ context.Context, token string) (*entity.Receipt, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.receipts {
		if s.receipts[i].PublicToken == token {
			r := cloneReceipt(&s.receipts[i])
			return &r, nil
		}
	}
	return nil, nil
}

func (s *ReceiptStore) List(_ context.Context, userID uuid.UUID, params *repository.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	if s.Err != nil {
		return nil, 0, s.Err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []entity.Receipt
	for i := range s.receipts {
		r := &s.receipts[i]
		if r.UserID == userID && params.Matches(r) {
			matched = append(matched, cloneReceipt(r))
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() > matched[j].ID.String()
	})

	total := int64(len(matched))
	start := params.Pagination.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Pagination.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// Count returns the number of stored receipts
func (s *ReceiptStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.receipts)
}

func cloneReceipt(r *entity.Receipt) entity.Receipt {
	c := *r
	c.Items = append([]entity.ReceiptItem(nil), r.Items...)
	sort.SliceStable(c.Items, func(i, j int) bool { return c.Items[i].Position < c.Items[j].Position })
	return c
}

// IdempotencyStore is an in-memory repository.IdempotencyRepository
type IdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

var _ repository.IdempotencyRepository = (*IdempotencyStore)(nil)

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{keys: make(map[string]entity.IdempotencyKey)}
}

func idempotencyID(key string, userID uuid.UUID) string {
	return userID.String() + "/" + key
}

func (s *IdempotencyStore) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, ok := s.keys[idempotencyID(key, userID)]
	if !ok {
		return nil, nil
	}
	return &k, nil
}

func (s *IdempotencyStore) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := idempotencyID(ikey.Key, ikey.UserID)
	if _, exists := s.keys[id]; exists {
		return nil
	}
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	ikey.CreatedAt = time.Now().UTC()
	s.keys[id] = *ikey
	return nil
}

func (s *IdempotencyStore) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, k := range s.keys {
		if k.IsExpired() {
			delete(s.keys, id)
			n++
		}
	}
	return n, nil
}
