package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "moviereview/docs" // registra a especificação Swagger
	"moviereview/internal/api/movie"
	"moviereview/internal/api/user"
	"moviereview/internal/pkg/cache"
	"moviereview/internal/pkg/logger"
	"moviereview/internal/pkg/middleware"
)

// Options reúne as dependências de infraestrutura usadas pelos middlewares.
type Options struct {
	Tokens          middleware.TokenValidator
	Users           middleware.UserFinder
	Cache           cache.Client
	RateLimit       int
	RateLimitPeriod time.Duration
	AllowedOrigins  []string
	TrustProxy      bool // aplica chimw.RealIP; só habilite atrás de um proxy confiável
	Logger          logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(movieHandler *movie.Handler, userHandler *user.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	// --- 1. Middlewares globais ---
	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// --- 2. Health Check e documentação ---
	r.Get("/", PingHandler)
	r.Get("/ping", PingHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	authenticate := middleware.Authenticate(opts.Tokens, opts.Users, opts.Logger)
	adminOnly := middleware.RequireAdmin(opts.Logger)

	// --- 3. API ---
	r.Route("/api", func(api chi.Router) {
		if opts.Cache != nil && opts.RateLimit > 0 {
			api.Use(middleware.RateLimiter(opts.Cache, opts.RateLimit, opts.RateLimitPeriod, opts.Logger))
		}

		api.Route("/movies", func(m chi.Router) {
			// Públicas
			m.Get("/import", movieHandler.ImportMoviesHandler)
			m.Get("/", movieHandler.ListMoviesHandler)
			m.Get("/{id}", movieHandler.GetMovieHandler)

			// Usuário autenticado
			m.With(authenticate).Post("/reviews", movieHandler.ReviewMovieHandler)

			// Administrador
			m.Group(func(admin chi.Router) {
				admin.Use(authenticate, adminOnly)
				admin.Post("/", movieHandler.CreateMovieHandler)
				admin.Put("/", movieHandler.RemoveMovieHandler)
				admin.Delete("/{id}", movieHandler.DeleteMovieHandler)
			})
		})

		api.Route("/users", func(u chi.Router) {
			// Públicas
			u.Post("/", userHandler.RegisterUserHandler)
			u.Post("/login", userHandler.LoginUserHandler)

			// Usuário autenticado
			u.Group(func(p chi.Router) {
				p.Use(authenticate)
				p.Put("/", userHandler.UpdateProfileHandler)
				p.Delete("/", userHandler.DeleteProfileHandler)
				p.Put("/password", userHandler.ChangePasswordHandler)
				p.Get("/favorites", userHandler.ListFavoritesHandler)
				p.Post("/favorites", userHandler.AddFavoriteHandler)
				p.Put("/favorites", userHandler.RemoveFavoriteHandler)
				p.Delete("/favorites", userHandler.ClearFavoritesHandler)
			})

			// Administrador
			u.Group(func(admin chi.Router) {
				admin.Use(authenticate, adminOnly)
				admin.Get("/", userHandler.ListUsersHandler)
				admin.Put("/remove", userHandler.AdminRemoveUserHandler)
				admin.Delete("/{id}", userHandler.AdminDeleteUserHandler)
			})
		})
	})

	return r
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
