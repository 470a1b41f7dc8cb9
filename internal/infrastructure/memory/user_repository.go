package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/manufactura-erp/internal/domain"
	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

// UserRepository implementa repository.UserRepository en memoria.
type UserRepository struct {
	store *Store
}

// NewUserRepository crea el repo sobre el store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserta el usuario; email duplicado retorna domain.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return fmt.Errorf("%w: email %s", domain.ErrDuplicate, u.Email)
		}
	}
	c := *u
	r.store.users[u.ID] = &c
	return nil
}

// GetByID devuelve el usuario o nil si no existe.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if u, ok := r.store.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

// GetByEmail devuelve el usuario o nil si no existe.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}
