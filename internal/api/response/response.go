package response

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"moviereview/internal/domain"
	apperror "moviereview/internal/errors"
	"moviereview/internal/pkg/logger"
)

// StructValidator é o contrato do validador de payloads (internal/pkg/validation).
type StructValidator interface {
	Struct(ctx context.Context, s interface{}) error
}

// JSON escreve data como JSON com o status informado.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error traduz um erro de negócio para o status HTTP e o corpo padronizado.
// Apenas erros 5xx são registrados no log.
func Error(w http.ResponseWriter, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError && log != nil {
		log.Error("Erro interno ao processar requisição:", err)
	}

	JSON(w, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// Handle centraliza a resposta de um handler: erro mapeado ou sucesso com successStatus.
func Handle(w http.ResponseWriter, log logger.Logger, data interface{}, err error, successStatus int) {
	if err != nil {
		Error(w, log, err)
		return
	}
	JSON(w, successStatus, data)
}

// Decode lê o corpo JSON em dst respeitando maxBytes e valida o resultado.
func Decode(w http.ResponseWriter, r *http.Request, maxBytes int64, v StructValidator, dst interface{}) error {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return apperror.NewValidationError("Payload excede o tamanho máximo permitido.")
		case errors.Is(err, io.EOF):
			return apperror.NewValidationError("Corpo da requisição vazio.")
		default:
			return apperror.NewValidationError("Payload JSON inválido.")
		}
	}

	if v == nil {
		return nil
	}
	return v.Struct(r.Context(), dst)
}
