// Package memory provides an in-process account store for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"account/internal/domain/entity"
	domainerrors "account/internal/domain/errors"
	"account/internal/domain/repository"

	"github.com/google/uuid"
)

// accountRepository keeps accounts in maps guarded by a single lock, so the
// duplicate check and the insert in Create are atomic.
type accountRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]entity.Account
	byEmail map[string]uuid.UUID
	now     func() time.Time
}

// NewAccountRepository creates an empty in-memory account store.
func NewAccountRepository() repository.AccountRepository {
	return &accountRepository{
		byID:    make(map[uuid.UUID]entity.Account),
		byEmail: make(map[string]uuid.UUID),
		now:     time.Now,
	}
}

func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.byEmail[account.Email]; exists {
		return domainerrors.ErrAccountAlreadyExists.WrapMessage("email already exists")
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := repo.now()
	account.CreatedAt = now
	account.UpdatedAt = now

	repo.byID[account.ID] = *account
	repo.byEmail[account.Email] = account.ID

	return nil
}

func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	account, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return &account, nil
}

func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	account := repo.byID[id]

	return &account, nil
}

// FindAll returns identities in creation order, ties broken by email.
func (repo *accountRepository) FindAll(ctx context.Context) ([]entity.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	accounts := make([]entity.Account, 0, len(repo.byID))
	for _, account := range repo.byID {
		accounts = append(accounts, account)
	}
	repo.mu.RUnlock()

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].Email < accounts[j].Email
		}

		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})

	identities := make([]entity.Identity, 0, len(accounts))
	for i := range accounts {
		identities = append(identities, accounts[i].Identity())
	}

	return identities, nil
}
