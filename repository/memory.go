package repository

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"agrimarket/models"

	"github.com/google/uuid"
)

// MemoryCropStore is a CropStore kept in process memory.
type MemoryCropStore struct {
	mu    sync.RWMutex
	order []string
	crops map[string]models.Crop
	now   func() time.Time
}

func NewMemoryCropStore(crops ...models.Crop) *MemoryCropStore {
	s := &MemoryCropStore{crops: map[string]models.Crop{}, now: time.Now}
	for _, c := range crops {
		s.put(c)
	}
	return s
}

func (s *MemoryCropStore) put(c models.Crop) models.Crop {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := s.now()
	if old, ok := s.crops[c.ID]; ok {
		c.CreatedAt = old.CreatedAt
	} else {
		s.order = append(s.order, c.ID)
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
	}
	c.UpdatedAt = now
	// forecasts are never stored
	c.PredictedPrices = nil
	s.crops[c.ID] = c
	return c
}

func (s *MemoryCropStore) filter(keep func(models.Crop) bool) []models.Crop {
	s.mu.RLock()
	defer s.mu.RUnlock()

	crops := []models.Crop{}
	for _, id := range s.order {
		if c := s.crops[id]; keep(c) {
			crops = append(crops, c)
		}
	}
	return crops
}

func (s *MemoryCropStore) All(_ context.Context) ([]models.Crop, error) {
	return s.filter(func(models.Crop) bool { return true }), nil
}

func (s *MemoryCropStore) ByFarmer(_ context.Context, farmerID string) ([]models.Crop, error) {
	return s.filter(func(c models.Crop) bool { return c.FarmerID == farmerID }), nil
}

func (s *MemoryCropStore) ByState(_ context.Context, state string) ([]models.Crop, error) {
	return s.filter(func(c models.Crop) bool { return strings.EqualFold(c.State, state) }), nil
}

func (s *MemoryCropStore) ByID(_ context.Context, id string) (models.Crop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.crops[id]
	if !ok {
		return models.Crop{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryCropStore) Save(_ context.Context, crop models.Crop) (models.Crop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(crop), nil
}

func (s *MemoryCropStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.crops[id]; !ok {
		return ErrNotFound
	}
	delete(s.crops, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

type memoryUser struct {
	user models.User
	hash string
}

// MemoryUserStore is a UserStore kept in process memory. Emails are unique
// regardless of case.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]memoryUser
	now   func() time.Time
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[string]memoryUser{}, now: time.Now}
}

func (s *MemoryUserStore) Create(_ context.Context, user models.User, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.user.Email, user.Email) {
			return models.User{}, ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = s.now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = memoryUser{user: user, hash: passwordHash}
	return user, nil
}

func (s *MemoryUserStore) ByEmail(_ context.Context, email string) (models.User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.user.Email, email) {
			return u.user, u.hash, nil
		}
	}
	return models.User{}, "", ErrNotFound
}

func (s *MemoryUserStore) ByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u.user, nil
}

// All returns users sorted by name then id, like the Postgres store.
func (s *MemoryUserStore) All(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.user)
	}
	sortUsers(users)
	return users, nil
}

func (s *MemoryUserStore) Update(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[user.ID]
	if !ok {
		return models.User{}, ErrNotFound
	}
	u.user.Name = user.Name
	u.user.State = user.State
	u.user.District = user.District
	u.user.Taluk = user.Taluk
	u.user.PhoneNumber = user.PhoneNumber
	u.user.UpdatedAt = s.now()
	s.users[user.ID] = u
	return u.user, nil
}

func sortUsers(users []models.User) {
	slices.SortFunc(users, func(a, b models.User) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID, b.ID))
	})
}
