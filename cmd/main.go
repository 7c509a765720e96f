package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"moviereview/config"
	"moviereview/internal/pkg/cache"
	"moviereview/internal/pkg/database"
	"moviereview/internal/pkg/logger"
	"moviereview/internal/pkg/password"
	"moviereview/internal/pkg/token"
	"moviereview/internal/pkg/validation"
	"moviereview/internal/seed"

	// Camadas para Injeção de Dependências
	"moviereview/internal/api/movie"  // Handlers
	"moviereview/internal/api/router" // Roteador central
	"moviereview/internal/api/user"
	"moviereview/internal/repository/movierepo" // Acesso a Dados
	"moviereview/internal/repository/userrepo"
	"moviereview/internal/service/movieservice" // Lógica de Negócio
	"moviereview/internal/service/userservice"
)

func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando Movie Review API...")
	if err := godotenv.Load(); err != nil {
		// As variáveis essenciais podem estar no ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (MongoDB)
	mongoClient, err := database.NewMongoClient(context.Background(), cfg.MongoURI, cfg.DBTimeout)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("Falha ao encerrar a conexão com o MongoDB.", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB)
	log.Info("Conexão MongoDB estabelecida.", map[string]interface{}{"database": cfg.MongoDB})

	idxCtx, idxCancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
	if _, err := database.EnsureIndexes(idxCtx, db); err != nil {
		log.Fatal("Falha ao criar índices.", err)
	}
	idxCancel()

	// B. Cache (Redis), com fallback em memória quando indisponível
	var cacheClient cache.Client = cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn("Redis indisponível, usando cache em memória.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		_ = cacheClient.Close()
		cacheClient = cache.NewMemoryClient()
	} else {
		log.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
	}
	pingCancel()
	defer cacheClient.Close()

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Credenciais
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	hasher := password.NewHasher(cfg.BcryptCost)
	validator := validation.New()
	log.Debug("Serviços de credenciais inicializados.", nil)

	// B. Repositórios
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	movieRepo := movierepo.NewMovieRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	log.Debug("Repositórios inicializados.", nil)

	// C. Serviços
	userSvc := userservice.NewService(userRepo, movieRepo, hasher, tokenSvc, log)
	movieSvc := movieservice.NewService(movieRepo, userRepo, log)
	log.Debug("Serviços inicializados.", nil)

	// D. Handlers
	userHandler := user.NewHandler(userSvc, validator, cfg.MaxBodyBytes, log)
	movieHandler := movie.NewHandler(movieSvc, seed.Movies, validator, cfg.MaxBodyBytes, log)
	log.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(movieHandler, userHandler, router.Options{
		Tokens:          tokenSvc,
		Users:           userRepo,
		Cache:           cacheClient,
		RateLimit:       cfg.RateLimitMaxRequests,
		RateLimitPeriod: cfg.RateLimitPeriod,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		TrustProxy:      cfg.TrustProxyHeaders,
		Logger:          log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
