package service

import (
	"context"
	"testing"

	"github.com/mattygrunge/planproduccion/internal/config"
	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUsuarioRepo struct {
	usuarios map[string]*model.Usuario
	nextID   uint
}

func (r *stubUsuarioRepo) CreateTx(tx *gorm.DB, u *model.Usuario) error {
	r.nextID++
	u.ID = r.nextID
	r.usuarios[u.Username] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	if u, ok := r.usuarios[username]; ok && u.Activo {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo || incluirInactivos {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(ctx context.Context, u *model.Usuario) error { return nil }
func (r *stubUsuarioRepo) SoftDelete(ctx context.Context, id uint) error {
	for _, u := range r.usuarios {
		if u.ID == id {
			u.Activo = false
		}
	}
	return nil
}
func (r *stubUsuarioRepo) Reactivar(ctx context.Context, id uint) error {
	for _, u := range r.usuarios {
		if u.ID == id {
			u.Activo = true
		}
	}
	return nil
}
func (r *stubUsuarioRepo) DB() *gorm.DB { return nil }

func newAuthServiceTest(t *testing.T) (AuthService, *stubUsuarioRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubUsuarioRepo{
		usuarios: map[string]*model.Usuario{
			"operario1": {
				ID:           1,
				Codigo:       "US250001",
				Username:     "operario1",
				Nombre:       "Operario Uno",
				PasswordHash: string(hash),
				Rol:          model.RolOperador,
				Activo:       true,
			},
		},
		nextID: 1,
	}
	cfg := &config.Config{
		JWTSecret:          "clave-de-test",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, &stubAllocator{}, nil, cfg), repo
}

func TestLoginOK(t *testing.T) {
	svc, _ := newAuthServiceTest(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "operario1",
		Password: "secreto123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "operario1", resp.User.Username)
	assert.Equal(t, model.RolOperador, resp.User.Rol)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	svc, _ := newAuthServiceTest(t)
	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "operario1",
		Password: "otra",
	})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestLoginUsuarioInactivo(t *testing.T) {
	svc, repo := newAuthServiceTest(t)
	repo.usuarios["operario1"].Activo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "operario1",
		Password: "secreto123",
	})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestRefreshEmiteTokensNuevos(t *testing.T) {
	svc, _ := newAuthServiceTest(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "operario1",
		Password: "secreto123",
	})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "operario1", resp.User.Username)
}

func TestRefreshTokenInvalido(t *testing.T) {
	svc, _ := newAuthServiceTest(t)
	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalido)
}

func TestCrearUsuarioAsignaCodigo(t *testing.T) {
	svc, repo := newAuthServiceTest(t)

	resp, err := svc.CrearUsuario(context.Background(), ClientInfo{}, dto.CrearUsuarioRequest{
		Username: "supervisor1",
		Nombre:   "Supervisor Uno",
		Password: "clave-larga",
		Rol:      model.RolSupervisor,
	})
	require.NoError(t, err)

	assert.Equal(t, "US250001", resp.Codigo)
	assert.Equal(t, model.RolSupervisor, resp.Rol)
	assert.True(t, resp.Activo)
	// la password nunca viaja en la respuesta y queda hasheada
	guardado := repo.usuarios["supervisor1"]
	assert.NotEqual(t, "clave-larga", guardado.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("clave-larga")))
}

func TestCrearUsuarioUsernameRepetido(t *testing.T) {
	svc, _ := newAuthServiceTest(t)

	_, err := svc.CrearUsuario(context.Background(), ClientInfo{}, dto.CrearUsuarioRequest{
		Username: "operario1",
		Nombre:   "Duplicado",
		Password: "clave-larga",
		Rol:      model.RolOperador,
	})
	assert.ErrorIs(t, err, ErrUsernameEnUso)
}
