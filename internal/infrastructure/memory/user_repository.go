package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/domain/repository"
)

// UserRepository lista de credenciales fija; no admite escrituras.
type UserRepository struct {
	users []entity.User
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(users ...entity.User) *UserRepository {
	return &UserRepository{users: append([]entity.User(nil), users...)}
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}
