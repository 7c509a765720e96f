package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviereview/internal/domain"
	apperror "moviereview/internal/errors"
	"moviereview/internal/pkg/cache"
	"moviereview/internal/pkg/logger"
	"moviereview/internal/pkg/middleware"
	"moviereview/internal/pkg/token"
)

// MockUserFinder é uma implementação mock da interface UserFinder
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func quietLogger() logger.Logger {
	return logger.NewLoggerWithWriter("error", io.Discard)
}

// echoUser responde com o usuário anexado ao contexto.
func echoUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"id": user.ID})
}

// TestAuthenticate_ValidToken testa que um token válido anexa o usuário ao contexto.
func TestAuthenticate_ValidToken(t *testing.T) {
	tokens := token.NewService("segredo", time.Hour)
	tok, err := tokens.GenerateToken("u1")
	require.NoError(t, err)

	users := new(MockUserFinder)
	users.On("FindByID", mock.Anything, "u1").Return(domain.User{ID: "u1"}, nil)

	handler := middleware.Authenticate(tokens, users, quietLogger())(http.HandlerFunc(echoUser))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"u1"`)
}

// TestAuthenticate_Rejections testa os casos que devem resultar em 401.
func TestAuthenticate_Rejections(t *testing.T) {
	tokens := token.NewService("segredo", time.Hour)
	other := token.NewService("outro-segredo", time.Hour)
	forged, err := other.GenerateToken("u1")
	require.NoError(t, err)
	orphan, err := tokens.GenerateToken("u-removido")
	require.NoError(t, err)

	users := new(MockUserFinder)
	users.On("FindByID", mock.Anything, "u-removido").Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado."))

	cases := map[string]string{
		"sem header":        "",
		"sem Bearer":        "Token abc",
		"assinatura errada": "Bearer " + forged,
		"usuário removido":  "Bearer " + orphan,
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			handler := middleware.Authenticate(tokens, users, quietLogger())(http.HandlerFunc(echoUser))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
		})
	}
}

// TestRequireAdmin testa a verificação de administrador.
func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	handler := middleware.RequireAdmin(quietLogger())(ok)

	t.Run("administrador", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), domain.User{ID: "a", IsAdmin: true}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("usuário comum", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(middleware.WithUser(req.Context(), domain.User{ID: "u"}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("sem autenticação", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

// TestRateLimiter_BlocksAfterLimit testa o 429 após exceder o limite da janela.
func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := middleware.RateLimiter(cache.NewMemoryClient(), 2, time.Minute, quietLogger())(ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Outro IP tem seu próprio contador.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// failingCache simula um Redis indisponível.
type failingCache struct{ cache.Client }

func (failingCache) IncrWithExpire(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("connection refused")
}

// TestRateLimiter_FailsOpen testa que uma falha do cache não bloqueia a requisição.
func TestRateLimiter_FailsOpen(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := middleware.RateLimiter(failingCache{}, 1, time.Minute, quietLogger())(ok)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

// windowRecorder registra a janela pedida a cada incremento.
type windowRecorder struct {
	*cache.MemoryClient
	windows []time.Duration
}

func (w *windowRecorder) IncrWithExpire(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	w.windows = append(w.windows, expiration)
	return w.MemoryClient.IncrWithExpire(ctx, key, expiration)
}

// TestRateLimiter_IncrementsAndExpiresTogether testa que toda contagem carrega a janela,
// de modo que nenhuma chave fica sem expiração.
func TestRateLimiter_IncrementsAndExpiresTogether(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	rec := &windowRecorder{MemoryClient: cache.NewMemoryClient()}
	handler := middleware.RateLimiter(rec, 5, 30*time.Second, quietLogger())(ok)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, []time.Duration{30 * time.Second, 30 * time.Second}, rec.windows)
	n, err := rec.Get(context.Background(), "rate-limit:10.0.0.9")
	require.NoError(t, err)
	assert.Equal(t, "2", n)
}

// TestRequestLogger_WritesFields testa o log estruturado da requisição.
func TestRequestLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	handler := middleware.RequestLogger(logger.NewLoggerWithWriter("info", &buf))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) }))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/movies", nil))

	assert.Contains(t, buf.String(), `"path":"/api/movies"`)
	assert.Contains(t, buf.String(), `"status":201`)
}
