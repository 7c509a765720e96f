package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"moviereview/internal/api/response"
	"moviereview/internal/domain"
	"moviereview/internal/pkg/cache"
	"moviereview/internal/pkg/logger"
)

// RateLimiter aplica uma janela fixa de limit requisições por IP a cada duration.
// O IP é o endereço de transporte (RemoteAddr); cabeçalhos de proxy só são
// considerados se o roteador tiver sido configurado para confiar neles.
// O contador vive no cache; se o cache falhar a requisição segue.
func RateLimiter(client cache.Client, limit int, duration time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip
			ctx := r.Context()

			count, err := client.IncrWithExpire(ctx, key, duration)
			if err != nil {
				log.Warn("Rate limiter indisponível, liberando requisição.", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			remaining := limit - int(count)
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if int(count) > limit {
				w.Header().Set("Retry-After", strconv.Itoa(int(duration.Seconds())))
				response.JSON(w, http.StatusTooManyRequests, domain.ErrorResponse{
					Code:     http.StatusTooManyRequests,
					Category: "RATE_LIMITED",
					Message:  "Muitas requisições deste IP. Tente novamente mais tarde.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
