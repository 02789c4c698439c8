package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/medical-erp-api/internal/application/dto"
	"github.com/jhoicas/medical-erp-api/internal/domain"
	"github.com/jhoicas/medical-erp-api/internal/domain/entity"
	"github.com/jhoicas/medical-erp-api/internal/infrastructure/memory"
	"github.com/jhoicas/medical-erp-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *AuthUseCase {
	t.Helper()
	users, err := memory.DemoUsers(bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthUseCase(memory.NewUserRepository(users...), JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "medical-erp"})
}

func TestLogin_OK(t *testing.T) {
	uc := newAuth(t)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Username: "staff", Password: memory.DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, "Jane Staff", res.User.Name)

	claims, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "2", claims.UserID)
	assert.Equal(t, entity.RoleStaff, claims.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: memory.DemoPassword})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe(t *testing.T) {
	uc := newAuth(t)

	u, err := uc.Me(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSupplier, u.Role)

	_, err = uc.Me(context.Background(), "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
