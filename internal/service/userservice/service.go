package userservice

import (
	"context"
	"errors"

	"moviereview/internal/domain"
	apperror "moviereview/internal/errors"
	"moviereview/internal/pkg/logger"
)

// UserRepository é o contrato que este Serviço espera da camada de Persistência.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id, fullName, image string) (domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	AddFavorite(ctx context.Context, id, movieID string) error
	RemoveFavorite(ctx context.Context, id, movieID string) error
	ClearFavorites(ctx context.Context, id string) error
}

// MovieRepository é a parte do repositório de filmes usada para resolver favoritos.
type MovieRepository interface {
	FindByID(ctx context.Context, id string) (domain.Movie, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Movie, error)
}

// PasswordHasher é o contrato do hashing de senhas (internal/pkg/password).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string) (string, error)
}

// Service implementa as regras de negócio de usuários e favoritos.
type Service struct {
	users  UserRepository
	movies MovieRepository
	hasher PasswordHasher
	tokens TokenService
	logger logger.Logger

	// hash comparado no login de e-mail desconhecido, para igualar o tempo de resposta
	dummyHash string
}

// NewService cria uma nova instância do Service, injetando suas dependências.
func NewService(users UserRepository, movies MovieRepository, hasher PasswordHasher, tokens TokenService, logger logger.Logger) *Service {
	dummy, err := hasher.Hash("senha-inexistente-para-login")
	if err != nil {
		logger.Warn("Falha ao gerar hash de referência do login.", map[string]interface{}{"error": err.Error()})
	}
	return &Service{
		users:     users,
		movies:    movies,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		dummyHash: dummy,
	}
}

// bcrypt só considera os primeiros 72 bytes da senha.
const maxPasswordBytes = 72

func checkPasswordLength(password string) error {
	if len(password) > maxPasswordBytes {
		return apperror.NewValidationError("A senha deve ter no máximo 72 bytes.")
	}
	return nil
}

// mensagem única para e-mail inexistente e senha incorreta
const invalidCredentialsMsg = "E-mail ou senha inválidos."

func isNotFound(err error) bool {
	var nf *apperror.NotFoundError
	return errors.As(err, &nf)
}

// Register registra um novo usuário com a senha em hash.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	s.logger.Debug("Iniciando registro de usuário.", map[string]interface{}{"email": req.Email})

	if req.Email == "" || req.Password == "" {
		return domain.User{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}
	if err := checkPasswordLength(req.Password); err != nil {
		return domain.User{}, err
	}

	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return domain.User{}, apperror.NewValidationError("Usuário já existe.")
	}
	if !isNotFound(err) {
		return domain.User{}, err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	user, err := s.users.Save(ctx, domain.User{
		FullName:    req.FullName,
		Email:       req.Email,
		Image:       req.Image,
		Password:    hashed,
		IsAdmin:     false,
		LikedMovies: []string{},
	})
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// Login autentica um usuário e emite um JWT. E-mail desconhecido e senha errada
// produzem exatamente o mesmo erro.
func (s *Service) Login(ctx context.Context, email, password string) (domain.AuthResponse, error) {
	if email == "" || password == "" {
		return domain.AuthResponse{}, apperror.NewUnauthorizedError(invalidCredentialsMsg)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			s.hasher.Verify(password, s.dummyHash)
			return domain.AuthResponse{}, apperror.NewUnauthorizedError(invalidCredentialsMsg)
		}
		return domain.AuthResponse{}, err
	}

	if !s.hasher.Verify(password, user.Password) {
		return domain.AuthResponse{}, apperror.NewUnauthorizedError(invalidCredentialsMsg)
	}

	return s.authResponse(user)
}

// UpdateProfile aplica uma atualização parcial e emite um novo token.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (domain.AuthResponse, error) {
	current, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	fullName := current.FullName
	if req.FullName != "" {
		fullName = req.FullName
	}
	image := current.Image
	if req.Image != "" {
		image = req.Image
	}

	updated, err := s.users.UpdateProfile(ctx, userID, fullName, image)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	s.logger.Info("Perfil atualizado.", map[string]interface{}{"user_id": userID})
	return s.authResponse(updated)
}

// ChangePassword troca a senha após conferir a senha atual.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if err := checkPasswordLength(newPassword); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(oldPassword, user.Password) {
		return apperror.NewUnauthorizedError("Senha atual inválida.")
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	s.logger.Info("Senha alterada.", map[string]interface{}{"user_id": userID})
	return nil
}

// DeleteSelf remove a conta do próprio usuário. Administradores não podem ser removidos.
func (s *Service) DeleteSelf(ctx context.Context, userID string) error {
	return s.deleteUser(ctx, userID)
}

// AdminDeleteUser remove outro usuário e devolve a listagem atualizada.
func (s *Service) AdminDeleteUser(ctx context.Context, targetID string) ([]domain.User, error) {
	if err := s.deleteUser(ctx, targetID); err != nil {
		return nil, err
	}
	return s.users.FindAll(ctx)
}

func (s *Service) deleteUser(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		s.logger.Warn("Tentativa de remover administrador.", map[string]interface{}{"user_id": userID})
		return apperror.NewForbiddenError("Não é possível remover um usuário administrador.")
	}
	return s.users.Delete(ctx, userID)
}

// ListUsers retorna todos os usuários; o hash da senha nunca é serializado.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

// ListFavorites resolve os IDs favoritos em filmes completos, na ordem em que foram adicionados.
func (s *Service) ListFavorites(ctx context.Context, userID string) ([]domain.Movie, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.movies.FindByIDs(ctx, user.LikedMovies)
}

// AddFavorite acrescenta um filme existente aos favoritos.
func (s *Service) AddFavorite(ctx context.Context, userID, movieID string) ([]domain.Movie, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasFavorite(movieID) {
		return nil, apperror.NewConflictError("Filme já está nos favoritos.")
	}
	if _, err := s.movies.FindByID(ctx, movieID); err != nil {
		return nil, err
	}

	if err := s.users.AddFavorite(ctx, userID, movieID); err != nil {
		return nil, err
	}

	s.logger.Debug("Favorito adicionado.", map[string]interface{}{"user_id": userID, "movie_id": movieID})
	return s.ListFavorites(ctx, userID)
}

// RemoveFavorite retira um filme dos favoritos. Remover um filme ausente não é erro.
func (s *Service) RemoveFavorite(ctx context.Context, userID, movieID string) ([]domain.Movie, error) {
	if err := s.users.RemoveFavorite(ctx, userID, movieID); err != nil {
		return nil, err
	}
	return s.ListFavorites(ctx, userID)
}

// ClearFavorites esvazia a lista de favoritos.
func (s *Service) ClearFavorites(ctx context.Context, userID string) ([]domain.Movie, error) {
	if err := s.users.ClearFavorites(ctx, userID); err != nil {
		return nil, err
	}
	return []domain.Movie{}, nil
}

func (s *Service) authResponse(user domain.User) (domain.AuthResponse, error) {
	tok, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return domain.AuthResponse{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	return domain.AuthResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Image:    user.Image,
		IsAdmin:  user.IsAdmin,
		Token:    tok,
	}, nil
}
