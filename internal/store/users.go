package store

import (
	"context"
	"sync"

	"github.com/pageza/recipebox/backend/internal/errs"
	"github.com/pageza/recipebox/backend/internal/gateway"
	"github.com/pageza/recipebox/backend/internal/model"
)

// Accounts maps normalized email to account
type Accounts map[string]model.Account

// UserStore holds every registered account under gateway.KeyUsers.
type UserStore struct {
	gw   gateway.Gateway
	seed func() Accounts
	ids  *IDGenerator
	mu   sync.Mutex
}

// NewUserStore creates a store on gw. seed provides the accounts written on first load.
func NewUserStore(gw gateway.Gateway, seed func() Accounts) *UserStore {
	if seed == nil {
		seed = func() Accounts { return Accounts{} }
	}
	return &UserStore{gw: gw, seed: seed, ids: NewIDGenerator()}
}

func (s *UserStore) load(ctx context.Context) (Accounts, error) {
	accounts, err := gateway.Load(ctx, s.gw, gateway.KeyUsers, s.seed)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = Accounts{}
	}
	return accounts, nil
}

// FindByEmail returns the account registered under email or errs.ErrNotFound
func (s *UserStore) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return model.Account{}, err
	}
	acc, ok := accounts[model.NormalizeEmail(email)]
	if !ok {
		return model.Account{}, errs.ErrNotFound
	}
	return acc, nil
}

// FindByID returns the account whose user has id or errs.ErrNotFound
func (s *UserStore) FindByID(ctx context.Context, id string) (model.Account, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return model.Account{}, err
	}
	for _, acc := range accounts {
		if acc.User.ID == id {
			return acc, nil
		}
	}
	return model.Account{}, errs.ErrNotFound
}

// Mutate loads all accounts, lets fn change them in place and saves the map.
// Nothing is written when fn returns an error.
func (s *UserStore) Mutate(ctx context.Context, fn func(Accounts) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(accounts); err != nil {
		return err
	}
	return gateway.Save(ctx, s.gw, gateway.KeyUsers, accounts)
}

// NewID returns a user id not taken by any account in accounts
func (s *UserStore) NewID(accounts Accounts) string {
	taken := make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		taken[acc.User.ID] = true
	}
	id := s.ids.Next()
	for taken[id] {
		id = s.ids.Next()
	}
	return id
}

// Reset overwrites all accounts with the seed
func (s *UserStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gateway.Save(ctx, s.gw, gateway.KeyUsers, s.seed())
}
