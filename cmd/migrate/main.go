package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"moviereview/config"
	"moviereview/internal/pkg/cache"
	"moviereview/internal/pkg/database"
	"moviereview/internal/pkg/logger"
	"moviereview/internal/repository/movierepo"
	"moviereview/internal/repository/userrepo"
	"moviereview/internal/seed"
	"moviereview/internal/service/movieservice"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: .env não encontrado. Carregando configs apenas do ambiente do sistema: %v", err)
	}

	cfg := config.LoadConfig()

	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "tempo máximo da operação")
	flag.Parse()

	command := "up" // padrão quando nenhum comando é informado
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := database.NewMongoClient(ctx, cfg.MongoURI, cfg.DBTimeout)
	if err != nil {
		log.Fatalf("migrate: falha ao conectar ao MongoDB: %v\n", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Fatalf("migrate: falha ao encerrar a conexão: %v\n", err)
		}
	}()
	db := client.Database(cfg.MongoDB)

	switch command {
	case "up":
		created, err := database.EnsureIndexes(ctx, db)
		if err != nil {
			log.Fatalf("migrate up: %v", err)
		}
		for coll, names := range created {
			fmt.Printf("migrate up: %s -> %v\n", coll, names)
		}

	case "seed":
		appLog := logger.NewLogger(cfg.LogLevel)
		movieRepo := movierepo.NewMovieRepository(db, cache.NewMemoryClient(), cfg.DBTimeout, cfg.CacheTTL, appLog)
		svc := movieservice.NewService(movieRepo, userrepo.NewUserRepository(db, cfg.DBTimeout, appLog), appLog)

		records, err := seed.Movies()
		if err != nil {
			log.Fatalf("migrate seed: %v", err)
		}
		movies, err := svc.BulkImport(ctx, records)
		if err != nil {
			log.Fatalf("migrate seed: %v", err)
		}
		fmt.Printf("migrate seed: %d filmes importados\n", len(movies))

	default:
		log.Fatalf("migrate: comando desconhecido %q (use up ou seed)", command)
	}

	fmt.Printf("migrate %s success\n", command)
}
