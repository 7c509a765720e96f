package movie

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"moviereview/internal/api/response"
	"moviereview/internal/domain"
	apperror "moviereview/internal/errors"
	"moviereview/internal/pkg/logger"
	"moviereview/internal/pkg/middleware"
)

// MovieService define o contrato das operações de catálogo e avaliações.
type MovieService interface {
	BulkImport(ctx context.Context, records []domain.Movie) ([]domain.Movie, error)
	List(ctx context.Context) ([]domain.Movie, error)
	Get(ctx context.Context, movieID string) (domain.Movie, error)
	Create(ctx context.Context, req domain.CreateMovieRequest, ownerID string) (domain.Movie, error)
	Remove(ctx context.Context, movieID string) error
	SubmitReview(ctx context.Context, movieID, userID string, rating int, comment string) (domain.Movie, error)
}

// SeedSource fornece o catálogo usado pela importação em massa.
type SeedSource func() ([]domain.Movie, error)

// Handler agrupa todos os métodos de Handler de filmes.
type Handler struct {
	Service      MovieService
	Seed         SeedSource
	Validator    response.StructValidator
	MaxBodyBytes int64
	Logger       logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc MovieService, seed SeedSource, v response.StructValidator, maxBodyBytes int64, log logger.Logger) *Handler {
	return &Handler{
		Service:      svc,
		Seed:         seed,
		Validator:    v,
		MaxBodyBytes: maxBodyBytes,
		Logger:       log,
	}
}

// ImportMoviesHandler lida com a requisição GET /api/movies/import.
// @Summary Importa o catálogo inicial
// @Description Apaga todos os filmes e insere o catálogo embutido. A operação não é atômica.
// @Tags movies
// @Produce json
// @Success 201 {array} domain.Movie "Filmes importados"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /movies/import [get]
func (h *Handler) ImportMoviesHandler(w http.ResponseWriter, r *http.Request) {
	records, err := h.Seed()
	if err != nil {
		response.Error(w, h.Logger, apperror.NewInternalError("Falha ao carregar catálogo embutido.", err))
		return
	}

	movies, err := h.Service.BulkImport(r.Context(), records)
	response.Handle(w, h.Logger, movies, err, http.StatusCreated)
}

// ListMoviesHandler lida com a requisição GET /api/movies.
// @Summary Lista todos os filmes
// @Tags movies
// @Produce json
// @Success 200 {object} domain.MoviesResponse
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /movies [get]
func (h *Handler) ListMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := h.Service.List(r.Context())
	if err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, domain.MoviesResponse{Movies: movies})
}

// GetMovieHandler lida com a requisição GET /api/movies/{id}.
// @Summary Busca um filme pelo ID
// @Tags movies
// @Produce json
// @Param id path string true "ID do filme"
// @Success 200 {object} domain.Movie
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Router /movies/{id} [get]
func (h *Handler) GetMovieHandler(w http.ResponseWriter, r *http.Request) {
	movie, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	response.Handle(w, h.Logger, movie, err, http.StatusOK)
}

// CreateMovieHandler lida com a requisição POST /api/movies.
// @Summary Cria um filme (admin)
// @Description Campos numéricos aceitam número ou string numérica. Avaliações enviadas são ignoradas.
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movie body domain.CreateMovieRequest true "Dados do filme"
// @Success 201 {object} domain.MessageResponse
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Failure 403 {object} domain.ErrorResponse "Não é administrador"
// @Router /movies [post]
func (h *Handler) CreateMovieHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req domain.CreateMovieRequest
	if err := response.Decode(w, r, h.MaxBodyBytes, h.Validator, &req); err != nil {
		response.Error(w, h.Logger, err)
		return
	}

	if _, err := h.Service.Create(r.Context(), req, user.ID); err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, domain.MessageResponse{Message: "Filme criado com sucesso."})
}

// RemoveMovieHandler lida com a requisição PUT /api/movies (corpo {movieId}).
// @Summary Remove um filme (admin)
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movie body domain.RemoveMovieRequest true "ID do filme"
// @Success 201 {object} domain.MessageResponse
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Router /movies [put]
func (h *Handler) RemoveMovieHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.RemoveMovieRequest
	if err := response.Decode(w, r, h.MaxBodyBytes, h.Validator, &req); err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	h.remove(w, r, req.MovieID, http.StatusCreated)
}

// DeleteMovieHandler lida com a requisição DELETE /api/movies/{id}.
// @Summary Remove um filme pelo ID (admin)
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do filme"
// @Success 200 {object} domain.MessageResponse
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Router /movies/{id} [delete]
func (h *Handler) DeleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request, movieID string, status int) {
	if err := h.Service.Remove(r.Context(), movieID); err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	response.JSON(w, status, domain.MessageResponse{Message: "Filme removido com sucesso."})
}

// ReviewMovieHandler lida com a requisição POST /api/movies/reviews.
// @Summary Avalia um filme
// @Description Cada usuário avalia um filme uma única vez. A média é atualizada incrementalmente.
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param review body domain.ReviewRequest true "Avaliação"
// @Success 201 {object} domain.Movie
// @Failure 400 {object} domain.ErrorResponse "Nota inválida"
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Filme já avaliado"
// @Router /movies/reviews [post]
func (h *Handler) ReviewMovieHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req domain.ReviewRequest
	if err := response.Decode(w, r, h.MaxBodyBytes, h.Validator, &req); err != nil {
		response.Error(w, h.Logger, err)
		return
	}
	rating, err := req.RatingValue()
	if err != nil {
		response.Error(w, h.Logger, apperror.NewValidationError("A nota deve ser um número inteiro."))
		return
	}

	movie, err := h.Service.SubmitReview(r.Context(), req.MovieID, user.ID, rating, req.Comment)
	response.Handle(w, h.Logger, movie, err, http.StatusCreated)
}
