package movieservice

import (
	"context"
	"fmt"
	"time"

	"moviereview/internal/domain"
	apperror "moviereview/internal/errors"
	"moviereview/internal/pkg/logger"
)

// MovieRepository é o contrato que este Serviço espera da camada de Persistência.
type MovieRepository interface {
	ReplaceAll(ctx context.Context, movies []domain.Movie) ([]domain.Movie, error)
	FindAll(ctx context.Context) ([]domain.Movie, error)
	FindByID(ctx context.Context, id string) (domain.Movie, error)
	Save(ctx context.Context, movie domain.Movie) (domain.Movie, error)
	Delete(ctx context.Context, id string) error
	AppendReview(ctx context.Context, movieID string, review domain.Review, expectedCount int, newRate float64) error
}

// UserRepository é usado para montar o snapshot do autor de uma avaliação.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
}

// Service implementa as regras de negócio do catálogo e das avaliações.
type Service struct {
	movies MovieRepository
	users  UserRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria uma nova instância do Service, injetando suas dependências.
func NewService(movies MovieRepository, users UserRepository, logger logger.Logger) *Service {
	return &Service{
		movies: movies,
		users:  users,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// BulkImport substitui todo o catálogo pelos registros informados.
// Rate e NumberOfReviews são recalculados a partir das avaliações embutidas.
func (s *Service) BulkImport(ctx context.Context, records []domain.Movie) ([]domain.Movie, error) {
	s.logger.Info("Iniciando importação do catálogo.", map[string]interface{}{"count": len(records)})

	prepared := make([]domain.Movie, len(records))
	for i, m := range records {
		m.ID = ""
		m.RecomputeRating()
		prepared[i] = m
	}

	return s.movies.ReplaceAll(ctx, prepared)
}

// List retorna o catálogo completo, sem paginação.
func (s *Service) List(ctx context.Context) ([]domain.Movie, error) {
	return s.movies.FindAll(ctx)
}

// Get retorna um filme pelo ID.
func (s *Service) Get(ctx context.Context, movieID string) (domain.Movie, error) {
	return s.movies.FindByID(ctx, movieID)
}

// Create cria um filme sem avaliações, registrando o administrador que o criou.
func (s *Service) Create(ctx context.Context, req domain.CreateMovieRequest, ownerID string) (domain.Movie, error) {
	movie, err := req.ToMovie()
	if err != nil {
		return domain.Movie{}, apperror.NewValidationError(err.Error())
	}
	movie.UserID = ownerID

	saved, err := s.movies.Save(ctx, movie)
	if err != nil {
		return domain.Movie{}, err
	}

	s.logger.Info("Filme criado.", map[string]interface{}{"movie_id": saved.ID, "user_id": ownerID})
	return saved, nil
}

// Remove apaga um filme do catálogo.
func (s *Service) Remove(ctx context.Context, movieID string) error {
	if err := s.movies.Delete(ctx, movieID); err != nil {
		return err
	}
	s.logger.Info("Filme removido.", map[string]interface{}{"movie_id": movieID})
	return nil
}

// SubmitReview registra a avaliação de um usuário e atualiza a média do filme.
// Cada usuário avalia um filme no máximo uma vez.
func (s *Service) SubmitReview(ctx context.Context, movieID, userID string, rating int, comment string) (domain.Movie, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return domain.Movie{}, apperror.NewValidationError(
			fmt.Sprintf("A nota deve estar entre %d e %d.", domain.MinRating, domain.MaxRating))
	}

	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return domain.Movie{}, err
	}
	if movie.HasReviewFrom(userID) {
		return domain.Movie{}, apperror.NewConflictError("Você já avaliou este filme.")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Movie{}, err
	}

	review := domain.Review{
		UserID:    user.ID,
		UserName:  user.FullName,
		UserImage: user.Image,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.now(),
	}

	expected := movie.NumberOfReviews
	movie.AddReview(review)

	if err := s.movies.AppendReview(ctx, movieID, review, expected, movie.Rate); err != nil {
		return domain.Movie{}, err
	}

	s.logger.Info("Avaliação registrada.", map[string]interface{}{
		"movie_id": movieID,
		"user_id":  userID,
		"rate":     movie.Rate,
	})
	return movie, nil
}
