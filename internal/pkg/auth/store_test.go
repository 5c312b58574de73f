package auth

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/cinelog/cinelog/app/models"
)

// fakeUserStore is an in-memory UserRepository that enforces the same
// unique constraints the database does.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User

	statsErr error // injected UpdateLoginStats failure
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*models.User)}
}

func (s *fakeUserStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	s.nextID++
	user.ID = s.nextID
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeUserStore) GetByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) GetByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) UpdateLoginStats(id uint, at time.Time, count uint) error {
	if s.statsErr != nil {
		return s.statsErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LoginCount = count
	u.LastLoginAt = &at
	return nil
}

func (s *fakeUserStore) Update(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeUserStore) Count() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

// mustSeedUser inserts a user directly, bypassing the resolver.
func (s *fakeUserStore) mustSeedUser(u models.User) *models.User {
	if err := s.Create(&u); err != nil {
		panic(err)
	}
	return &u
}

// fakeAccountStore is an in-memory ProviderAccountRepository with the
// unique (provider, provider_user_id) constraint.
type fakeAccountStore struct {
	mu       sync.Mutex
	nextID   uint
	accounts map[uint]*models.ProviderAccount

	beforeCreate func() // hook to interleave a competing write
	updateErr    error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[uint]*models.ProviderAccount)}
}

func (s *fakeAccountStore) GetByProviderAccountID(provider, providerUserID string) (*models.ProviderAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Provider == provider && a.ProviderUserID == providerUserID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAccountStore) Create(account *models.ProviderAccount) error {
	if s.beforeCreate != nil {
		hook := s.beforeCreate
		s.beforeCreate = nil
		hook()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Provider == account.Provider && a.ProviderUserID == account.ProviderUserID {
			return gorm.ErrDuplicatedKey
		}
	}
	s.nextID++
	account.ID = s.nextID
	clone := *account
	s.accounts[account.ID] = &clone
	return nil
}

func (s *fakeAccountStore) UpdateTokens(account *models.ProviderAccount) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.accounts[account.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.AccessToken = account.AccessToken
	existing.RefreshToken = account.RefreshToken
	existing.ExpiresAt = account.ExpiresAt
	existing.TokenType = account.TokenType
	existing.Scope = account.Scope
	existing.IDToken = account.IDToken
	return nil
}

// mustSeedAccount inserts a link directly, bypassing the linker.
func (s *fakeAccountStore) mustSeedAccount(a models.ProviderAccount) *models.ProviderAccount {
	if err := s.Create(&a); err != nil {
		panic(err)
	}
	return &a
}

func (s *fakeAccountStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

func (s *fakeAccountStore) byID(id uint) *models.ProviderAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[id]; ok {
		clone := *a
		return &clone
	}
	return nil
}
