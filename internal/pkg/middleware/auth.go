package middleware

import (
	"context"
	"net/http"
	"strings"

	"moviereview/internal/api/response"
	"moviereview/internal/domain"
	apperror "moviereview/internal/errors"
	"moviereview/internal/pkg/logger"
	"moviereview/internal/pkg/token"
)

// ContextKey é um tipo não exportado para evitar colisão com outras chaves do contexto.
type ContextKey int

const (
	UserKey ContextKey = iota
)

// TokenValidator define o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// UserFinder carrega o usuário dono do token.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (domain.User, error)
}

// Authenticate valida o JWT do header Authorization, carrega o usuário do banco
// e o anexa ao contexto da requisição. Qualquer falha resulta em 401.
func Authenticate(tokens TokenValidator, users UserFinder, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(tokenString) == "" {
				response.Error(w, log, apperror.NewUnauthorizedError("Não autorizado, token ausente."))
				return
			}

			// 2. Validar o Token
			claims, err := tokens.ValidateToken(strings.TrimSpace(tokenString))
			if err != nil {
				log.Debug("Token rejeitado.", map[string]interface{}{"error": err.Error()})
				response.Error(w, log, apperror.NewUnauthorizedError("Não autorizado, token inválido ou expirado."))
				return
			}

			// 3. Carregar o usuário; permissões vêm do banco, não do token
			user, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				status, _, _ := apperror.MapToHTTPStatus(err)
				if status >= http.StatusInternalServerError {
					response.Error(w, log, err)
					return
				}
				response.Error(w, log, apperror.NewUnauthorizedError("Não autorizado, usuário não encontrado."))
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin libera a rota apenas para administradores. Deve vir depois de Authenticate.
func RequireAdmin(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				response.Error(w, log, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}
			if !user.IsAdmin {
				response.Error(w, log, apperror.NewForbiddenError("Não autorizado como administrador."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext é uma função utilitária para extrair o usuário autenticado no handler.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(UserKey).(domain.User)
	return user, ok
}

// WithUser anexa um usuário ao contexto. Usado pelos testes dos handlers.
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
