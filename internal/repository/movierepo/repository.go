package movierepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moviereview/internal/domain"
	apperror "moviereview/internal/errors"
	"moviereview/internal/pkg/cache"
	"moviereview/internal/pkg/database"
	"moviereview/internal/pkg/logger"
)

// Chaves de cache da listagem completa do catálogo. A listagem é gravada em
// allMoviesCacheKey + ":" + geração; cada escrita incrementa a geração, então uma
// leitura que preencha o cache depois de uma escrita concorrente grava numa
// geração que ninguém mais lê.
const (
	allMoviesCacheKey   = "movies:all"
	moviesGenerationKey = "movies:gen"
)

// MovieRepository persiste filmes na coleção "movies" do MongoDB.
// A listagem completa usa a estratégia Cache-Aside no Redis; toda escrita avança a geração.
type MovieRepository struct {
	coll      *mongo.Collection
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewMovieRepository cria e retorna uma nova instância do Repositório.
func NewMovieRepository(db *mongo.Database, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *MovieRepository {
	return &MovieRepository{
		coll:      db.Collection(database.MoviesCollection),
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func movieNotFound() apperror.AppError {
	return apperror.NewNotFoundError("Filme não encontrado.")
}

// prepare preenche ID, timestamps e coleções vazias antes de inserir.
func prepare(m domain.Movie, now time.Time) domain.Movie {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Casts == nil {
		m.Casts = []domain.Cast{}
	}
	if m.Reviews == nil {
		m.Reviews = []domain.Review{}
	}
	return m
}

// ReplaceAll apaga todo o catálogo e insere os filmes informados.
// As duas etapas não são atômicas: leitores concorrentes podem ver o catálogo vazio
// e, se a inserção falhar, o catálogo permanece vazio.
func (r *MovieRepository) ReplaceAll(ctx context.Context, movies []domain.Movie) ([]domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	defer r.invalidate(ctx)

	deleted, err := r.coll.DeleteMany(ctxTimeout, bson.M{})
	if err != nil {
		r.logger.Error("Falha ao apagar o catálogo.", err)
		return nil, apperror.NewDBError("failed to delete movies", err)
	}
	r.logger.Debug("Catálogo apagado.", map[string]interface{}{"deleted": deleted.DeletedCount})
	r.invalidate(ctx)

	if len(movies) == 0 {
		return []domain.Movie{}, nil
	}

	now := time.Now().UTC()
	out := make([]domain.Movie, len(movies))
	docs := make([]interface{}, len(movies))
	for i, m := range movies {
		out[i] = prepare(m, now)
		docs[i] = out[i]
	}

	if _, err := r.coll.InsertMany(ctxTimeout, docs); err != nil {
		r.logger.Error("Falha ao inserir o catálogo.", err)
		return nil, apperror.NewDBError("failed to insert movies", err)
	}

	r.logger.Info("Catálogo importado.", map[string]interface{}{"count": len(out)})
	return out, nil
}

// FindAll retorna o catálogo completo, consultando o cache antes do banco.
func (r *MovieRepository) FindAll(ctx context.Context) ([]domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// A geração é lida antes da consulta ao banco.
	key, cacheable := r.listCacheKey(ctxTimeout)

	// --- Cache-Aside (READ) ---
	if cacheable {
		if cached, err := r.Cache.Get(ctxTimeout, key); err == nil {
			var movies []domain.Movie
			if json.Unmarshal([]byte(cached), &movies) == nil {
				return movies, nil
			}
			r.logger.Warn("Cache de filmes corrompido, consultando o banco.", nil)
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			r.logger.Warn("Falha ao ler do cache Redis.", map[string]interface{}{"error": err.Error()})
		}
	}

	cur, err := r.coll.Find(ctxTimeout, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		r.logger.Error("Falha ao listar filmes no DB.", err)
		return nil, apperror.NewDBError("failed to list movies", err)
	}

	movies := []domain.Movie{}
	if err := cur.All(ctxTimeout, &movies); err != nil {
		return nil, apperror.NewDBError("failed to decode movies", err)
	}

	// --- Cache-Aside (WRITE) ---
	if !cacheable {
		return movies, nil
	}
	if data, err := json.Marshal(movies); err == nil {
		if err := r.Cache.Set(ctxTimeout, key, data, r.CacheTTL); err != nil {
			r.logger.Warn("Falha ao gravar cache de filmes.", map[string]interface{}{"error": err.Error()})
		}
	}

	return movies, nil
}

// FindByID busca um filme pelo ID.
func (r *MovieRepository) FindByID(ctx context.Context, id string) (domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var movie domain.Movie
	err := r.coll.FindOne(ctxTimeout, bson.M{"_id": id}).Decode(&movie)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Movie{}, movieNotFound()
	}
	if err != nil {
		r.logger.Error("Falha ao buscar filme no DB.", err)
		return domain.Movie{}, apperror.NewDBError("failed to find movie", err)
	}
	return movie, nil
}

// FindByIDs resolve uma lista de IDs mantendo a ordem recebida.
// IDs sem filme correspondente são ignorados.
func (r *MovieRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Movie, error) {
	if len(ids) == 0 {
		return []domain.Movie{}, nil
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctxTimeout, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		r.logger.Error("Falha ao buscar filmes por IDs.", err)
		return nil, apperror.NewDBError("failed to find movies by ids", err)
	}

	var found []domain.Movie
	if err := cur.All(ctxTimeout, &found); err != nil {
		return nil, apperror.NewDBError("failed to decode movies", err)
	}

	return orderByIDs(found, ids), nil
}

func orderByIDs(movies []domain.Movie, ids []string) []domain.Movie {
	byID := make(map[string]domain.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}
	out := make([]domain.Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Save insere um novo filme.
func (r *MovieRepository) Save(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	movie = prepare(movie, time.Now().UTC())
	if _, err := r.coll.InsertOne(ctxTimeout, movie); err != nil {
		r.logger.Error("Falha ao inserir filme no DB.", err)
		return domain.Movie{}, apperror.NewDBError("failed to insert movie", err)
	}
	r.invalidate(ctx)

	r.logger.Info("Filme salvo com sucesso no repositório.", map[string]interface{}{"movie_id": movie.ID})
	return movie, nil
}

// Delete remove um filme pelo ID.
func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctxTimeout, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Falha ao remover filme no DB.", err)
		return apperror.NewDBError("failed to delete movie", err)
	}
	if res.DeletedCount == 0 {
		return movieNotFound()
	}
	r.invalidate(ctx)
	return nil
}

// AppendReview grava a avaliação e a nova média numa única atualização condicional.
// O filtro exige que numberOfReviews ainda seja expectedCount e que o usuário não
// tenha avaliado o filme, de modo que duas escritas concorrentes não se sobrescrevem.
func (r *MovieRepository) AppendReview(ctx context.Context, movieID string, review domain.Review, expectedCount int, newRate float64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	filter := bson.M{
		"_id":             movieID,
		"numberOfReviews": expectedCount,
		"reviews.userId":  bson.M{"$ne": review.UserID},
	}
	update := bson.M{
		"$push": bson.M{"reviews": review},
		"$set":  bson.M{"rate": newRate, "updatedAt": time.Now().UTC()},
		"$inc":  bson.M{"numberOfReviews": 1},
	}

	res, err := r.coll.UpdateOne(ctxTimeout, filter, update)
	if err != nil {
		r.logger.Error("Falha ao gravar avaliação no DB.", err)
		return apperror.NewDBError("failed to append review", err)
	}
	if res.MatchedCount == 1 {
		r.invalidate(ctx)
		return nil
	}

	// O filtro não casou: descobre o motivo para devolver o erro correto.
	current, err := r.FindByID(ctx, movieID)
	if err != nil {
		return err
	}
	if current.HasReviewFrom(review.UserID) {
		return apperror.NewConflictError("Você já avaliou este filme.")
	}
	r.logger.Warn("Avaliação concorrente detectada.", map[string]interface{}{
		"movie_id":       movieID,
		"expected_count": expectedCount,
		"current_count":  current.NumberOfReviews,
	})
	return apperror.NewConflictError("O filme foi modificado por outra operação. Tente novamente.")
}

// listCacheKey devolve a chave da listagem na geração atual.
// Sem geração legível o cache é ignorado nesta chamada.
func (r *MovieRepository) listCacheKey(ctx context.Context) (string, bool) {
	gen, err := r.Cache.Get(ctx, moviesGenerationKey)
	if errors.Is(err, cache.ErrCacheMiss) {
		gen = "0"
	} else if err != nil {
		r.logger.Warn("Falha ao ler a geração do cache de filmes.", map[string]interface{}{"error": err.Error()})
		return "", false
	}
	return allMoviesCacheKey + ":" + gen, true
}

// invalidate avança a geração; as listagens antigas expiram pelo TTL.
func (r *MovieRepository) invalidate(ctx context.Context) {
	if _, err := r.Cache.Incr(ctx, moviesGenerationKey); err != nil {
		r.logger.Warn("Falha ao invalidar cache de filmes.", map[string]interface{}{"error": err.Error()})
	}
}
