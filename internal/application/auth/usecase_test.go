package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cotizador-api/internal/application/auth"
	"github.com/jhoicas/cotizador-api/internal/application/dto"
	"github.com/jhoicas/cotizador-api/internal/domain"
	"github.com/jhoicas/cotizador-api/internal/domain/entity"
	"github.com/jhoicas/cotizador-api/pkg/jwt"
)

type memUsers struct {
	users []*entity.User
}

func (m *memUsers) Create(u *entity.User) error { m.users = append(m.users, u); return nil }

func (m *memUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByID(id string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.ID == id })
}

func (m *memUsers) GetByEmail(email string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.Email == email })
}

func (m *memUsers) GetByIdentification(id string) (*entity.User, error) {
	return m.find(func(u *entity.User) bool { return u.IdentificationNumber == id })
}

func (m *memUsers) Update(*entity.User) error             { return nil }
func (m *memUsers) List(int, int) ([]*entity.User, error) { return m.users, nil }

const secret = "test-secret"

func newUC() (*auth.AuthUseCase, *memUsers) {
	repo := &memUsers{}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "cotizador-api"}), repo
}

func register(t *testing.T, uc *auth.AuthUseCase) *dto.UserResponse {
	t.Helper()
	u, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "Carlos@Ferre.co", Password: "secreto123", Name: "Carlos", IdentificationNumber: "2020",
	})
	require.NoError(t, err)
	return u
}

func TestRegister_RolPorDefectoYEmailNormalizado(t *testing.T) {
	uc, repo := newUC()
	u := register(t, uc)

	assert.Equal(t, "carlos@ferre.co", u.Email)
	assert.Equal(t, entity.RoleVendedor, u.Role)
	assert.Equal(t, entity.UserStatusActive, u.Status)
	require.Len(t, repo.users, 1)
	assert.NotEqual(t, "secreto123", repo.users[0].PasswordHash)
}

func TestRegister_Duplicados(t *testing.T) {
	uc, _ := newUC()
	register(t, uc)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "carlos@ferre.co", Password: "otro12345", IdentificationNumber: "3030"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "otro@ferre.co", Password: "otro12345", IdentificationNumber: "2020"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_TokenConRol(t *testing.T) {
	uc, _ := newUC()
	u := register(t, uc)

	out, err := uc.Login(dto.LoginRequest{Email: "carlos@ferre.co", Password: "secreto123"})
	require.NoError(t, err)

	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleVendedor, role)
}

func TestLogin_Errores(t *testing.T) {
	uc, repo := newUC()
	register(t, uc)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@ferre.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(dto.LoginRequest{Email: "carlos@ferre.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	repo.users[0].Status = entity.UserStatusInactive
	_, err = uc.Login(dto.LoginRequest{Email: "carlos@ferre.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMe(t *testing.T) {
	uc, _ := newUC()
	u := register(t, uc)

	me, err := uc.Me(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "2020", me.IdentificationNumber)

	_, err = uc.Me("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
