package userrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moviereview/internal/domain"
	apperror "moviereview/internal/errors"
	"moviereview/internal/pkg/database"
	"moviereview/internal/pkg/logger"
)

// UserRepository persiste usuários na coleção "users" do MongoDB.
type UserRepository struct {
	coll      *mongo.Collection
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o banco.
func NewUserRepository(db *mongo.Database, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		coll:      db.Collection(database.UsersCollection),
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

func userNotFound() apperror.AppError {
	return apperror.NewNotFoundError("Usuário não encontrado.")
}

// Save insere um novo usuário. E-mail duplicado (índice único) vira ValidationError.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"email": user.Email})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	if user.LikedMovies == nil {
		user.LikedMovies = []string{}
	}

	if _, err := r.coll.InsertOne(ctxTimeout, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Info("E-mail já cadastrado (índice único).", map[string]interface{}{"email": user.Email})
			return domain.User{}, apperror.NewValidationError("Usuário já existe.")
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to insert user", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// FindByEmail busca um usuário pelo endereço de e-mail.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID busca um usuário pelo ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var user domain.User
	err := r.coll.FindOne(ctxTimeout, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, userNotFound()
	}
	if err != nil {
		r.logger.Error("Falha ao buscar usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to find user", err)
	}
	return user, nil
}

// FindAll retorna todos os usuários (sem paginação).
func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctxTimeout, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		r.logger.Error("Falha ao listar usuários no DB.", err)
		return nil, apperror.NewDBError("failed to list users", err)
	}

	users := []domain.User{}
	if err := cur.All(ctxTimeout, &users); err != nil {
		return nil, apperror.NewDBError("failed to decode users", err)
	}
	return users, nil
}

// UpdateProfile aplica nome e imagem e devolve o documento atualizado.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, fullName, image string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"fullName":  fullName,
		"image":     image,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	err := r.coll.FindOneAndUpdate(ctxTimeout, bson.M{"_id": id}, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, userNotFound()
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar perfil no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to update user profile", err)
	}
	return user, nil
}

// UpdatePassword grava um novo hash de senha.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password":  passwordHash,
		"updatedAt": time.Now().UTC(),
	}})
}

// Delete remove um usuário que não seja administrador.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctxTimeout, bson.M{"_id": id, "isAdmin": bson.M{"$ne": true}})
	if err != nil {
		r.logger.Error("Falha ao remover usuário no DB.", err)
		return apperror.NewDBError("failed to delete user", err)
	}
	if res.DeletedCount == 0 {
		// O filtro não casou: usuário inexistente ou administrador.
		existing, err := r.findOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if existing.IsAdmin {
			return apperror.NewForbiddenError("Não é possível remover um usuário administrador.")
		}
		return userNotFound()
	}

	r.logger.Info("Usuário removido.", map[string]interface{}{"user_id": id})
	return nil
}

// AddFavorite acrescenta o filme ao final da lista, apenas se ainda não estiver nela.
func (r *UserRepository) AddFavorite(ctx context.Context, id, movieID string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctxTimeout,
		bson.M{"_id": id, "likedMovies": bson.M{"$ne": movieID}},
		bson.M{
			"$push": bson.M{"likedMovies": movieID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		r.logger.Error("Falha ao adicionar favorito no DB.", err)
		return apperror.NewDBError("failed to add favorite", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nenhum documento casou: ou o usuário não existe ou o filme já é favorito.
	n, err := r.coll.CountDocuments(ctxTimeout, bson.M{"_id": id})
	if err != nil {
		return apperror.NewDBError("failed to check user", err)
	}
	if n == 0 {
		return userNotFound()
	}
	return apperror.NewConflictError("Filme já está nos favoritos.")
}

// RemoveFavorite retira o filme da lista. Remover um ID ausente não é erro.
func (r *UserRepository) RemoveFavorite(ctx context.Context, id, movieID string) error {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{"likedMovies": movieID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

// ClearFavorites esvazia a lista de favoritos.
func (r *UserRepository) ClearFavorites(ctx context.Context, id string) error {
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"likedMovies": []string{},
		"updatedAt":   time.Now().UTC(),
	}})
}

func (r *UserRepository) updateOne(ctx context.Context, filter, update bson.M) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctxTimeout, filter, update)
	if err != nil {
		r.logger.Error("Falha ao atualizar usuário no DB.", err)
		return apperror.NewDBError("failed to update user", err)
	}
	if res.MatchedCount == 0 {
		return userNotFound()
	}
	return nil
}
