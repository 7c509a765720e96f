package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Nomes das coleções usadas pela aplicação.
const (
	UsersCollection  = "users"
	MoviesCollection = "movies"
)

// NewMongoClient inicializa o pool de conexões com o MongoDB e testa a conexão.
// O chamador é responsável por Disconnect.
func NewMongoClient(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetMinPoolSize(2).
		SetMaxConnIdleTime(2 * time.Minute).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o MongoDB: %w", err)
	}

	// Garante que as credenciais e o servidor estão corretos
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("falha ao realizar o ping inicial no MongoDB: %w", err)
	}

	return client, nil
}

// IndexModels lista os índices exigidos por cada coleção.
func IndexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_email"),
			},
		},
		MoviesCollection: {
			{
				Keys:    bson.D{{Key: "reviews.userId", Value: 1}},
				Options: options.Index().SetName("idx_reviews_user"),
			},
			{
				Keys:    bson.D{{Key: "category", Value: 1}, {Key: "year", Value: -1}},
				Options: options.Index().SetName("idx_category_year"),
			},
		},
	}
}

// EnsureIndexes cria (de forma idempotente) os índices de todas as coleções.
// Retorna os nomes criados por coleção.
func EnsureIndexes(ctx context.Context, db *mongo.Database) (map[string][]string, error) {
	created := make(map[string][]string)
	for coll, models := range IndexModels() {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			return created, fmt.Errorf("falha ao criar índices em %s: %w", coll, err)
		}
		created[coll] = names
	}
	return created, nil
}
