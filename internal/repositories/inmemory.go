package repositories

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"muroom/internal/models"
)

// InMemoryUserRepository keeps users in a map behind a mutex. Used by tests
// and local development; semantics mirror the mongo implementation, including
// the unique email constraint and atomic reset-code consumption.
type InMemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by hex id
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: make(map[string]*models.User)}
}

func clone(u *models.User) *models.User {
	cp := *u
	if u.ResetCode != nil {
		rc := *u.ResetCode
		cp.ResetCode = &rc
	}
	return &cp
}

func (r *InMemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID.Hex()] = clone(user)
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return clone(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(u), nil
}

func (r *InMemoryUserRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryUserRepository) UpdateProfile(_ context.Context, id string, email, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if email != "" {
		for oid, other := range r.users {
			if oid != id && other.Email == email {
				return nil, ErrDuplicateKey
			}
		}
		u.Email = email
	}
	if username != "" {
		u.Username = username
	}
	u.UpdatedAt = time.Now()
	return clone(u), nil
}

func (r *InMemoryUserRepository) SetResetCode(_ context.Context, id, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.ResetCode = &code
	u.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryUserRepository) ConsumeResetCode(_ context.Context, code string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ResetCode != nil && *u.ResetCode == code {
			u.ResetCode = nil
			u.UpdatedAt = time.Now()
			return clone(u), nil
		}
	}
	return nil, ErrNotFound
}
