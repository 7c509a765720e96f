package userservice_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviereview/internal/domain"
	apperror "moviereview/internal/errors"
	"moviereview/internal/pkg/logger"
	"moviereview/internal/service/userservice"
)

// MockUserRepository é uma implementação mock da interface UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id, fullName, image string) (domain.User, error) {
	args := m.Called(ctx, id, fullName, image)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) AddFavorite(ctx context.Context, id, movieID string) error {
	return m.Called(ctx, id, movieID).Error(0)
}

func (m *MockUserRepository) RemoveFavorite(ctx context.Context, id, movieID string) error {
	return m.Called(ctx, id, movieID).Error(0)
}

func (m *MockUserRepository) ClearFavorites(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockMovieRepository é uma implementação mock da interface MovieRepository
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) FindByID(ctx context.Context, id string) (domain.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Movie), args.Error(1)
}

func (m *MockMovieRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Movie, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Movie), args.Error(1)
}

// fakeHasher troca bcrypt por um prefixo previsível.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (fakeHasher) Verify(plain, hash string) bool    { return hash == "hashed:"+plain }

// recordingHasher registra os hashes comparados em Verify.
type recordingHasher struct {
	fakeHasher
	compared []string
}

func (h *recordingHasher) Verify(plain, hash string) bool {
	h.compared = append(h.compared, hash)
	return h.fakeHasher.Verify(plain, hash)
}

// MockTokenService é uma implementação mock da interface TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

type fixture struct {
	users  *MockUserRepository
	movies *MockMovieRepository
	tokens *MockTokenService
	svc    *userservice.Service
}

func newFixture() fixture {
	f := fixture{
		users:  new(MockUserRepository),
		movies: new(MockMovieRepository),
		tokens: new(MockTokenService),
	}
	f.svc = userservice.NewService(f.users, f.movies, fakeHasher{}, f.tokens, logger.NewLogger("debug"))
	return f
}

// TestRegister_Success testa o registro com hash de senha e usuário não administrador.
func TestRegister_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := domain.RegisterRequest{FullName: "Ana", Email: "ana@example.com", Password: "segredo"}

	f.users.On("FindByEmail", mock.Anything, "ana@example.com").
		Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado."))
	f.users.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Password == "hashed:segredo" && !u.IsAdmin && u.LikedMovies != nil
	})).Return(domain.User{ID: "u1", FullName: "Ana", Email: "ana@example.com", Password: "hashed:segredo"}, nil)

	user, err := f.svc.Register(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NotEqual(t, "segredo", user.Password)
	f.users.AssertExpectations(t)
}

// TestRegister_Duplicate testa que um e-mail já cadastrado é rejeitado.
func TestRegister_Duplicate(t *testing.T) {
	f := newFixture()
	f.users.On("FindByEmail", mock.Anything, "ana@example.com").Return(domain.User{ID: "u1"}, nil)

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{FullName: "Ana", Email: "ana@example.com", Password: "segredo"})

	require.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "Usuário já existe.")
	f.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestRegister_RepositoryFailure testa a propagação de falhas inesperadas do repositório.
func TestRegister_RepositoryFailure(t *testing.T) {
	f := newFixture()
	dbErr := apperror.NewDBError("failed to find user", errors.New("timeout"))
	f.users.On("FindByEmail", mock.Anything, "ana@example.com").Return(domain.User{}, dbErr)

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{FullName: "Ana", Email: "ana@example.com", Password: "segredo"})

	assert.ErrorIs(t, err, dbErr)
}

// TestLogin_Success testa a emissão do token com as credenciais corretas.
func TestLogin_Success(t *testing.T) {
	f := newFixture()
	id := uuid.NewString()
	f.users.On("FindByEmail", mock.Anything, "ana@example.com").
		Return(domain.User{ID: id, FullName: "Ana", Email: "ana@example.com", Password: "hashed:segredo"}, nil)
	f.tokens.On("GenerateToken", id).Return("jwt-token", nil)

	resp, err := f.svc.Login(context.Background(), "ana@example.com", "segredo")

	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "jwt-token", resp.Token)
	assert.False(t, resp.IsAdmin)
}

// TestLogin_FailuresAreIndistinguishable testa que e-mail desconhecido e senha errada
// produzem o mesmo erro.
func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	f := newFixture()
	f.users.On("FindByEmail", mock.Anything, "ninguem@example.com").
		Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado."))
	f.users.On("FindByEmail", mock.Anything, "ana@example.com").
		Return(domain.User{ID: "u1", Password: "hashed:segredo"}, nil)

	_, errUnknown := f.svc.Login(context.Background(), "ninguem@example.com", "segredo")
	_, errWrong := f.svc.Login(context.Background(), "ana@example.com", "errada")

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.IsType(t, &apperror.UnauthorizedError{}, errUnknown)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	f.tokens.AssertNotCalled(t, "GenerateToken", mock.Anything)
}

// TestUpdateProfile_KeepsMissingFields testa a atualização parcial do perfil.
func TestUpdateProfile_KeepsMissingFields(t *testing.T) {
	f := newFixture()
	f.users.On("FindByID", mock.Anything, "u1").
		Return(domain.User{ID: "u1", FullName: "Ana", Image: "old.png"}, nil)
	f.users.On("UpdateProfile", mock.Anything, "u1", "Ana Souza", "old.png").
		Return(domain.User{ID: "u1", FullName: "Ana Souza", Image: "old.png"}, nil)
	f.tokens.On("GenerateToken", "u1").Return("novo-token", nil)

	resp, err := f.svc.UpdateProfile(context.Background(), "u1", domain.UpdateProfileRequest{FullName: "Ana Souza"})

	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", resp.FullName)
	assert.Equal(t, "old.png", resp.Image)
	assert.Equal(t, "novo-token", resp.Token)
	f.users.AssertExpectations(t)
}

// TestChangePassword_WrongOldPassword testa a rejeição quando a senha atual não confere.
func TestChangePassword_WrongOldPassword(t *testing.T) {
	f := newFixture()
	f.users.On("FindByID", mock.Anything, "u1").Return(domain.User{ID: "u1", Password: "hashed:antiga"}, nil)

	err := f.svc.ChangePassword(context.Background(), "u1", "errada", "nova123")

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
	f.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

// TestChangePassword_Success testa que a nova senha é gravada em hash.
func TestChangePassword_Success(t *testing.T) {
	f := newFixture()
	f.users.On("FindByID", mock.Anything, "u1").Return(domain.User{ID: "u1", Password: "hashed:antiga"}, nil)
	f.users.On("UpdatePassword", mock.Anything, "u1", "hashed:nova123").Return(nil)

	err := f.svc.ChangePassword(context.Background(), "u1", "antiga", "nova123")

	assert.NoError(t, err)
	f.users.AssertExpectations(t)
}

// TestDeleteSelf_AdminForbidden testa que administradores não podem ser removidos.
func TestDeleteSelf_AdminForbidden(t *testing.T) {
	f := newFixture()
	f.users.On("FindByID", mock.Anything, "admin").Return(domain.User{ID: "admin", IsAdmin: true}, nil)

	err := f.svc.DeleteSelf(context.Background(), "admin")

	assert.IsType(t, &apperror.ForbiddenError{}, err)
	f.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// TestAdminDeleteUser_ReturnsRemainingUsers testa a remoção de um usuário comum.
func TestAdminDeleteUser_ReturnsRemainingUsers(t *testing.T) {
	f := newFixture()
	remaining := []domain.User{{ID: "admin", IsAdmin: true}}
	f.users.On("FindByID", mock.Anything, "u2").Return(domain.User{ID: "u2"}, nil)
	f.users.On("Delete", mock.Anything, "u2").Return(nil)
	f.users.On("FindAll", mock.Anything).Return(remaining, nil)

	users, err := f.svc.AdminDeleteUser(context.Background(), "u2")

	require.NoError(t, err)
	assert.Equal(t, remaining, users)
}

// TestAddFavorite_Success testa a inclusão de um favorito e o retorno da lista resolvida.
func TestAddFavorite_Success(t *testing.T) {
	f := newFixture()
	movie := domain.Movie{ID: "m2", Name: "Alien"}
	f.users.On("FindByID", mock.Anything, "u1").Return(domain.User{ID: "u1", LikedMovies: []string{"m1"}}, nil).Once()
	f.movies.On("FindByID", mock.Anything, "m2").Return(movie, nil)
	f.users.On("AddFavorite", mock.Anything, "u1", "m2").Return(nil)
	f.users.On("FindByID", mock.Anything, "u1").Return(domain.User{ID: "u1", LikedMovies: []string{"m1", "m2"}}, nil).Once()
	f.movies.On("FindByIDs", mock.Anything, []string{"m1", "m2"}).
		Return([]domain.Movie{{ID: "m1"}, movie}, nil)

	favorites, err := f.svc.AddFavorite(context.Background(), "u1", "m2")

	require.NoError(t, err)
	require.Len(t, favorites, 2)
	assert.Equal(t, "m2", favorites[1].ID)
	f.users.AssertExpectations(t)
	f.movies.AssertExpectations(t)
}

// TestAddFavorite_AlreadyPresent testa o conflito ao favoritar o mesmo filme duas vezes.
func TestAddFavorite_AlreadyPresent(t *testing.T) {
	f := newFixture()
	f.users.On("FindByID", mock.Anything, "u1").Return(domain.User{ID: "u1", LikedMovies: []string{"m1"}}, nil)

	_, err := f.svc.AddFavorite(context.Background(), "u1", "m1")

	assert.IsType(t, &apperror.ConflictError{}, err)
	f.users.AssertNotCalled(t, "AddFavorite", mock.Anything, mock.Anything, mock.Anything)
}

// TestAddFavorite_UnknownMovie testa que um filme inexistente não é favoritado.
func TestAddFavorite_UnknownMovie(t *testing.T) {
	f := newFixture()
	f.users.On("FindByID", mock.Anything, "u1").Return(domain.User{ID: "u1"}, nil)
	f.movies.On("FindByID", mock.Anything, "m404").Return(domain.Movie{}, apperror.NewNotFoundError("Filme não encontrado."))

	_, err := f.svc.AddFavorite(context.Background(), "u1", "m404")

	assert.IsType(t, &apperror.NotFoundError{}, err)
	f.users.AssertNotCalled(t, "AddFavorite", mock.Anything, mock.Anything, mock.Anything)
}

// TestClearFavorites testa que a lista devolvida fica vazia.
func TestClearFavorites(t *testing.T) {
	f := newFixture()
	f.users.On("ClearFavorites", mock.Anything, "u1").Return(nil)

	favorites, err := f.svc.ClearFavorites(context.Background(), "u1")

	require.NoError(t, err)
	assert.NotNil(t, favorites)
	assert.Empty(t, favorites)
}

// TestRegister_PasswordOverBcryptLimit testa que 72 caracteres multibyte
// (144 bytes) são rejeitados antes de chegar ao hash.
func TestRegister_PasswordOverBcryptLimit(t *testing.T) {
	f := newFixture()
	password := strings.Repeat("é", 72)

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{FullName: "Ana", Email: "ana@example.com", Password: password})

	require.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "72 bytes")
	f.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	f.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestRegister_PasswordAtBcryptLimit testa que exatamente 72 bytes ainda é aceito.
func TestRegister_PasswordAtBcryptLimit(t *testing.T) {
	f := newFixture()
	password := strings.Repeat("é", 36)
	f.users.On("FindByEmail", mock.Anything, "ana@example.com").
		Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado."))
	f.users.On("Save", mock.Anything, mock.Anything).Return(domain.User{ID: "u1"}, nil)

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{FullName: "Ana", Email: "ana@example.com", Password: password})

	require.NoError(t, err)
}

// TestChangePassword_NewPasswordOverBcryptLimit testa o mesmo limite na troca de senha.
func TestChangePassword_NewPasswordOverBcryptLimit(t *testing.T) {
	f := newFixture()

	err := f.svc.ChangePassword(context.Background(), "u1", "segredo", strings.Repeat("é", 72))

	require.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	f.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

// TestLogin_UnknownEmailStillComparesHash testa que o e-mail desconhecido passa
// por uma comparação de hash, como o login com senha errada.
func TestLogin_UnknownEmailStillComparesHash(t *testing.T) {
	users := new(MockUserRepository)
	hasher := &recordingHasher{}
	svc := userservice.NewService(users, new(MockMovieRepository), hasher, new(MockTokenService), logger.NewLogger("debug"))
	users.On("FindByEmail", mock.Anything, "ninguem@example.com").
		Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado."))

	_, err := svc.Login(context.Background(), "ninguem@example.com", "segredo")

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
	require.Len(t, hasher.compared, 1)
	assert.NotEmpty(t, hasher.compared[0])
}

// TestAdminDeleteUser_AdminTargetForbidden testa que um administrador não pode
// ser removido pela rota administrativa.
func TestAdminDeleteUser_AdminTargetForbidden(t *testing.T) {
	f := newFixture()
	f.users.On("FindByID", mock.Anything, "admin").Return(domain.User{ID: "admin", IsAdmin: true}, nil)

	users, err := f.svc.AdminDeleteUser(context.Background(), "admin")

	require.Error(t, err)
	assert.IsType(t, &apperror.ForbiddenError{}, err)
	assert.Nil(t, users)
	f.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.users.AssertNotCalled(t, "FindAll", mock.Anything)
}

// TestRemoveFavorite_AbsentMovieKeepsList testa que remover um ID que não está
// nos favoritos devolve a lista inalterada, sem erro.
func TestRemoveFavorite_AbsentMovieKeepsList(t *testing.T) {
	f := newFixture()
	liked := []string{"m1", "m2"}
	f.users.On("RemoveFavorite", mock.Anything, "u1", "m9").Return(nil)
	f.users.On("FindByID", mock.Anything, "u1").Return(domain.User{ID: "u1", LikedMovies: liked}, nil)
	f.movies.On("FindByIDs", mock.Anything, liked).
		Return([]domain.Movie{{ID: "m1", Name: "Alien"}, {ID: "m2", Name: "Heat"}}, nil)

	favorites, err := f.svc.RemoveFavorite(context.Background(), "u1", "m9")

	require.NoError(t, err)
	require.Len(t, favorites, 2)
	assert.Equal(t, "m1", favorites[0].ID)
	assert.Equal(t, "m2", favorites[1].ID)
	f.users.AssertExpectations(t)
}
