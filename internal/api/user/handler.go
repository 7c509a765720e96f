package user

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"moviereview/internal/api/response"
	"moviereview/internal/domain"
	"moviereview/internal/pkg/logger"
	"moviereview/internal/pkg/middleware"
)

// UserService define o contrato das operações de conta e favoritos.
type UserService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.AuthResponse, error)
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (domain.AuthResponse, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	DeleteSelf(ctx context.Context, userID string) error
	ListFavorites(ctx context.Context, userID string) ([]domain.Movie, error)
	AddFavorite(ctx context.Context, userID, movieID string) ([]domain.Movie, error)
	RemoveFavorite(ctx context.Context, userID, movieID string) ([]domain.Movie, error)
	ClearFavorites(ctx context.Context, userID string) ([]domain.Movie, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	AdminDeleteUser(ctx context.Context, targetID string) ([]domain.User, error)
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service      UserService
	Validator    response.StructValidator
	MaxBodyBytes int64
	Logger       logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, v response.StructValidator, maxBodyBytes int64, log logger.Logger) *Handler {
	return &Handler{
		Service:      svc,
		Validator:    v,
		MaxBodyBytes: maxBodyBytes,
		Logger:       log,
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := response.Decode(w, r, h.MaxBodyBytes, h.Validator, dst); err != nil {
		response.Error(w, h.Logger, err)
		return false
	}
	return true
}

// RegisterUserHandler lida com a requisição POST /api/users.
// @Summary Registra um novo usuário
// @Description Cria um novo usuário, hasheia a senha e salva no banco de dados.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.RegisterRequest true "Dados de registro"
// @Success 201 {object} domain.MessageResponse "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou e-mail já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /users [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	if _, err := h.Service.Register(r.Context(), req); err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, domain.MessageResponse{Message: "Usuário criado com sucesso."})
}

// LoginUserHandler lida com a requisição POST /api/users/login.
// @Summary Autentica um usuário e retorna um JWT
// @Description Recebe email/senha, verifica a validade e emite um JSON Web Token.
// @Tags users
// @Accept json
// @Produce json
// @Param login body domain.LoginRequest true "Credenciais do usuário"
// @Success 200 {object} domain.AuthResponse "Perfil e token"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /users/login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.Service.Login(r.Context(), req.Email, req.Password)
	response.Handle(w, h.Logger, resp, err, http.StatusOK)
}

// UpdateProfileHandler lida com a requisição PUT /api/users.
// @Summary Atualiza o perfil do usuário autenticado
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body domain.UpdateProfileRequest true "Campos a atualizar"
// @Success 200 {object} domain.AuthResponse "Perfil atualizado com novo token"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Router /users [put]
func (h *Handler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req domain.UpdateProfileRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.Service.UpdateProfile(r.Context(), user.ID, req)
	response.Handle(w, h.Logger, resp, err, http.StatusOK)
}

// DeleteProfileHandler lida com a requisição DELETE /api/users.
// @Summary Remove a conta do usuário autenticado
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.MessageResponse
// @Failure 403 {object} domain.ErrorResponse "Administradores não podem ser removidos"
// @Router /users [delete]
func (h *Handler) DeleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	if err := h.Service.DeleteSelf(r.Context(), user.ID); err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, domain.MessageResponse{Message: "Usuário removido com sucesso."})
}

// ChangePasswordHandler lida com a requisição PUT /api/users/password.
// @Summary Troca a senha do usuário autenticado
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param password body domain.ChangePasswordRequest true "Senha atual e nova senha"
// @Success 200 {object} domain.MessageResponse
// @Failure 401 {object} domain.ErrorResponse "Senha atual inválida"
// @Router /users/password [put]
func (h *Handler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req domain.ChangePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.Service.ChangePassword(r.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, domain.MessageResponse{Message: "Senha alterada com sucesso."})
}

// ListFavoritesHandler lida com a requisição GET /api/users/favorites.
// @Summary Lista os filmes favoritos
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Movie
// @Router /users/favorites [get]
func (h *Handler) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	movies, err := h.Service.ListFavorites(r.Context(), user.ID)
	response.Handle(w, h.Logger, movies, err, http.StatusOK)
}

// AddFavoriteHandler lida com a requisição POST /api/users/favorites.
// @Summary Adiciona um filme aos favoritos
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param favorite body domain.FavoriteRequest true "ID do filme"
// @Success 200 {array} domain.Movie
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Filme já está nos favoritos"
// @Router /users/favorites [post]
func (h *Handler) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req domain.FavoriteRequest
	if !h.decode(w, r, &req) {
		return
	}

	movies, err := h.Service.AddFavorite(r.Context(), user.ID, req.MovieID)
	response.Handle(w, h.Logger, movies, err, http.StatusOK)
}

// RemoveFavoriteHandler lida com a requisição PUT /api/users/favorites.
// @Summary Remove um filme dos favoritos
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param favorite body domain.FavoriteRequest true "ID do filme"
// @Success 200 {array} domain.Movie
// @Router /users/favorites [put]
func (h *Handler) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req domain.FavoriteRequest
	if !h.decode(w, r, &req) {
		return
	}

	movies, err := h.Service.RemoveFavorite(r.Context(), user.ID, req.MovieID)
	response.Handle(w, h.Logger, movies, err, http.StatusOK)
}

// ClearFavoritesHandler lida com a requisição DELETE /api/users/favorites.
// @Summary Esvazia a lista de favoritos
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Movie
// @Router /users/favorites [delete]
func (h *Handler) ClearFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	movies, err := h.Service.ClearFavorites(r.Context(), user.ID)
	response.Handle(w, h.Logger, movies, err, http.StatusOK)
}

// ListUsersHandler lida com a requisição GET /api/users.
// @Summary Lista todos os usuários (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.UsersResponse
// @Failure 403 {object} domain.ErrorResponse "Não é administrador"
// @Router /users [get]
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	if err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, domain.UsersResponse{Users: users})
}

// AdminRemoveUserHandler lida com a requisição PUT /api/users/remove (corpo {id}).
// @Summary Remove um usuário (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body domain.AdminDeleteUserRequest true "ID do usuário"
// @Success 200 {object} domain.UsersResponse
// @Failure 403 {object} domain.ErrorResponse "Usuário alvo é administrador"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/remove [put]
func (h *Handler) AdminRemoveUserHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.AdminDeleteUserRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.adminDelete(w, r, req.ID)
}

// AdminDeleteUserHandler lida com a requisição DELETE /api/users/{id}.
// @Summary Remove um usuário pelo ID (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do usuário"
// @Success 200 {object} domain.UsersResponse
// @Router /users/{id} [delete]
func (h *Handler) AdminDeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	h.adminDelete(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) adminDelete(w http.ResponseWriter, r *http.Request, targetID string) {
	users, err := h.Service.AdminDeleteUser(r.Context(), targetID)
	if err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, domain.UsersResponse{Users: users})
}
