package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bizbooks/bizbooks-api/internal/domain/entity"
	"github.com/bizbooks/bizbooks-api/internal/domain/enum"
	"github.com/google/uuid"
)

// In-memory fakes for the repository interfaces, used across the service
// tests in this package.

type fakeSequenceRepo struct {
	mu       sync.Mutex
	counters map[string]int64
	calls    int
	err      error
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{counters: make(map[string]int64)}
}

func (f *fakeSequenceRepo) Increment(_ context.Context, year int, t enum.TransactionType) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.calls++
	key := fmt.Sprintf("%d/%s", year, t)
	f.counters[key]++
	return f.counters[key], nil
}

type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]entity.Transaction
	err          error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[string]entity.Transaction)}
}

func (f *fakeTransactionRepo) Create(_ context.Context, transaction *entity.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	f.transactions[transaction.ID] = *transaction
	return nil
}

func (f *fakeTransactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.transactions[id]
	if !ok {
		return nil, nil
	}
	copied := t
	return &copied, nil
}

func (f *fakeTransactionRepo) GetAll(_ context.Context) ([]entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	all := make([]entity.Transaction, 0, len(f.transactions))
	for _, t := range f.transactions {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return all, nil
}

func (f *fakeTransactionRepo) Update(_ context.Context, transaction *entity.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.transactions[transaction.ID]; !ok {
		return errors.New("no such transaction")
	}
	f.transactions[transaction.ID] = *transaction
	return nil
}

func (f *fakeTransactionRepo) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.transactions[id]; !ok {
		return false, nil
	}
	delete(f.transactions, id)
	return true, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errors.New("no such user")
	}
	u.PasswordHash = passwordHash
	f.users[id] = u
	return nil
}
