package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/family-service/internal/domain"
)

// In-memory implementations of the repository interfaces. They enforce the
// same uniqueness rules as the database constraints, so handler and service
// tests exercise the constraint-violation paths without Postgres.

type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
	order []string
}

// NewMemoryUserRepository builds an empty in-memory user store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
		if existing.Name == user.Name {
			return domain.ErrUsernameTaken
		}
	}

	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.ID] = &stored
	r.order = append(r.order, user.ID)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *memoryUserRepository) GetByName(_ context.Context, name string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Name == name })
}

func (r *memoryUserRepository) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if match(user) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, *r.users[id])
	}
	return result, nil
}

type memoryFamilyRepository struct {
	mu      sync.Mutex
	members map[string]*domain.FamilyMember
	order   []string
	clock   time.Time
}

// NewMemoryFamilyRepository builds an empty in-memory family store.
func NewMemoryFamilyRepository() FamilyRepository {
	return &memoryFamilyRepository{
		members: make(map[string]*domain.FamilyMember),
		clock:   time.Now(),
	}
}

func (r *memoryFamilyRepository) Create(_ context.Context, member *domain.FamilyMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Monotonic creation times keep newest-first ordering deterministic.
	r.clock = r.clock.Add(time.Millisecond)
	member.ID = uuid.NewString()
	member.CreatedAt = r.clock
	member.UpdatedAt = r.clock

	stored := *member
	r.members[member.ID] = &stored
	r.order = append(r.order, member.ID)
	return nil
}

func (r *memoryFamilyRepository) Update(_ context.Context, member *domain.FamilyMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.members[member.ID]
	if !ok {
		return domain.ErrNotFound
	}
	member.CreatedAt = existing.CreatedAt
	member.UpdatedAt = time.Now()

	stored := *member
	r.members[member.ID] = &stored
	return nil
}

func (r *memoryFamilyRepository) GetByID(_ context.Context, id string) (*domain.FamilyMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if member, ok := r.members[id]; ok {
		copied := *member
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memoryFamilyRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.members, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryFamilyRepository) List(_ context.Context, limit, offset int) ([]domain.FamilyMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]domain.FamilyMember, 0, limit)
	for i := len(r.order) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		result = append(result, *r.members[r.order[i]])
	}
	return result, nil
}

func (r *memoryFamilyRepository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members), nil
}
